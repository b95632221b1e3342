package style

import (
	"testing"
	"testing/fstest"
)

func testLibrary(t *testing.T) *Library {
	t.Helper()
	fsys := fstest.MapFS{
		"Basic.yaml": {Data: []byte(`
- name: Photorealistic
  prompt: "{prompt}, photorealistic, 8k, sharp focus"
  negative_prompt: "cartoon, drawing"
- name: Watercolor
  prompt: "soft watercolor painting"
`)},
		"Anime.yml": {Data: []byte(`
- name: Cel Shaded
  prompt: "{prompt}, cel shaded anime style"
`)},
		"notes.txt": {Data: []byte("ignored")},
	}
	lib, err := Load(fsys)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return lib
}

func TestLoad(t *testing.T) {
	lib := testLibrary(t)

	files := lib.Files()
	if len(files) != 2 || files[0] != "Anime" || files[1] != "Basic" {
		t.Errorf("Files = %v, want [Anime Basic]", files)
	}
	if got := len(lib.Styles("Basic")); got != 2 {
		t.Errorf("Basic styles = %d, want 2", got)
	}

	t.Run("bad yaml fails", func(t *testing.T) {
		bad := fstest.MapFS{"broken.yaml": {Data: []byte("{{not yaml")}}
		if _, err := Load(bad); err == nil {
			t.Error("expected parse error")
		}
	})
}

func TestFind(t *testing.T) {
	lib := testLibrary(t)

	if s, ok := lib.Find("Basic", "Watercolor"); !ok || s.Prompt != "soft watercolor painting" {
		t.Errorf("Find = %+v, %v", s, ok)
	}
	if _, ok := lib.Find("Basic", "Oil"); ok {
		t.Error("unknown style should not be found")
	}
	if _, ok := lib.Find("Nope", "Watercolor"); ok {
		t.Error("unknown category should not be found")
	}
}

func TestApply(t *testing.T) {
	lib := testLibrary(t)

	tests := []struct {
		name   string
		file   string
		style  string
		prompt string
		want   string
	}{
		{
			name:   "placeholder substitution",
			file:   "Basic",
			style:  "Photorealistic",
			prompt: "a red fox",
			want:   "a red fox, photorealistic, 8k, sharp focus. Avoid: cartoon, drawing",
		},
		{
			name:   "append without placeholder",
			file:   "Basic",
			style:  "Watercolor",
			prompt: "a red fox",
			want:   "a red fox, soft watercolor painting",
		},
		{
			name:   "none passes through",
			file:   "Basic",
			style:  None,
			prompt: "a red fox",
			want:   "a red fox",
		},
		{
			name:   "unknown style passes through",
			file:   "Basic",
			style:  "Oil",
			prompt: "a red fox",
			want:   "a red fox",
		},
		{
			name:   "empty prompt keeps template",
			file:   "Basic",
			style:  "Watercolor",
			prompt: "",
			want:   "soft watercolor painting",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := lib.Apply(tt.file, tt.style, tt.prompt); got != tt.want {
				t.Errorf("Apply = %q, want %q", got, tt.want)
			}
		})
	}
}
