// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package slug

import "testing"

// TestGenerate exercises the slug generator across typical titles,
// punctuation, unicode, and boundary conditions.
func TestGenerate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "simple two words",
			input: "Hello World",
			want:  "hello-world",
		},
		{
			name:  "title with year",
			input: "Nmap Cheat Sheet 2026",
			want:  "nmap-cheat-sheet-2026",
		},
		{
			name:  "already a slug",
			input: "already-a-slug",
			want:  "already-a-slug",
		},
		{
			name:  "punctuation marks",
			input: "Hello, World! How's it going?",
			want:  "hello-world-hows-it-going",
		},
		{
			name:  "ampersand and at sign",
			input: "Red Team & Blue Team @ DEF CON",
			want:  "red-team-blue-team-def-con",
		},
		{
			name:  "parentheses and dots",
			input: "Metasploit (6.4) Basics",
			want:  "metasploit-64-basics",
		},
		{
			name:  "slashes dropped without separator",
			input: "TCP/IP Deep Dive",
			want:  "tcpip-deep-dive",
		},
		{
			name:  "hash and dollar",
			input: "CVE #42 costs $100",
			want:  "cve-42-costs-100",
		},
		{
			name:  "non-latin characters stripped",
			input: "правила 101",
			want:  "101",
		},
		{
			name:  "leading and trailing whitespace",
			input: "  padded title  ",
			want:  "padded-title",
		},
		{
			name:  "consecutive spaces collapse",
			input: "too    many spaces",
			want:  "too-many-spaces",
		},
		{
			name:  "hyphens survive and collapse",
			input: "pre--hyphenated -- title",
			want:  "pre-hyphenated-title",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "only punctuation",
			input: "!!! ??? ...",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Generate(tt.input); got != tt.want {
				t.Errorf("Generate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
