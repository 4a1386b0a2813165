package iconset

import "testing"

func TestIconBlock(t *testing.T) {
	tests := []struct {
		name  string
		paths []string
		want  string
	}{
		{
			name:  "two paths",
			paths: []string{"icons/32x32.png", "icons/icon.ico"},
			want: `"icon": [
        "icons/32x32.png",
        "icons/icon.ico"
      ]`,
		},
		{
			name:  "single path",
			paths: []string{"icons/icon.icns"},
			want: `"icon": [
        "icons/icon.icns"
      ]`,
		},
		{
			name:  "windows separators are escaped",
			paths: []string{`icons\icon.ico`},
			want: `"icon": [
        "icons\\icon.ico"
      ]`,
		},
	}
	for _, tt := range tests {
		if got := IconBlock(tt.paths); got != tt.want {
			t.Errorf("%s: IconBlock() =\n%s\nwant\n%s", tt.name, got, tt.want)
		}
	}
}
