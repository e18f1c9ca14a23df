package browser

import (
	"testing"
)

func TestCommand(t *testing.T) {
	tests := []struct {
		goos    string
		name    string
		wantErr bool
	}{
		{"darwin", "open", false},
		{"linux", "xdg-open", false},
		{"windows", "rundll32", false},
		{"plan9", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			name, args, err := Command(tt.goos, "https://somafm.com/groovesalad/")
			if (err != nil) != tt.wantErr {
				t.Fatalf("Command() error = %v, wantErr %v", err, tt.wantErr)
			}
			if name != tt.name {
				t.Errorf("Command() name = %q, want %q", name, tt.name)
			}
			if !tt.wantErr && args[len(args)-1] != "https://somafm.com/groovesalad/" {
				t.Errorf("Command() args = %v, want URL last", args)
			}
		})
	}
}
