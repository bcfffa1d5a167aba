package relay

import "testing"

func TestExtractCode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "plain code",
			in:   "local p = Instance.new(\"Part\")",
			want: "local p = Instance.new(\"Part\")",
		},
		{
			name: "lua fence",
			in:   "```lua\nlocal p = 1\n```",
			want: "local p = 1",
		},
		{
			name: "bare fence",
			in:   "```\nlocal p = 1\n```",
			want: "local p = 1",
		},
		{
			name: "prose around fence",
			in:   "Here is your door:\n```lua\nlocal door = 1\n```\nEnjoy!",
			want: "local door = 1",
		},
		{
			name: "unterminated fence",
			in:   "```lua\nlocal p = 1",
			want: "local p = 1",
		},
		{
			name: "empty",
			in:   "   \n  ",
			want: "",
		},
		{
			name: "luau tag",
			in:   "```luau\nprint(\"hi\")\n```",
			want: "print(\"hi\")",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractCode(tt.in); got != tt.want {
				t.Errorf("ExtractCode(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
