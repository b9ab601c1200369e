package markdown

import (
	"strings"
	"testing"
)

const (
	h1Open = `<h1 id="Title" class="text-3xl font-display font-bold mb-6 mt-8 first:mt-0">`
	ulOpen = `<ul class="list-disc list-inside mb-4 space-y-2">`
	liOpen = `<li class="mb-2">`
)

func TestLegacyRender(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "h1 keeps raw text as id",
			in:   "# Title",
			want: h1Open + "Title</h1>",
		},
		{
			name: "h2",
			in:   "## Budget Considerations",
			want: `<h2 id="Budget Considerations" class="text-2xl font-display font-semibold mb-4 mt-6">Budget Considerations</h2>`,
		},
		{
			name: "h3",
			in:   "### Cinema Cameras",
			want: `<h3 id="Cinema Cameras" class="text-xl font-display font-semibold mb-3 mt-5">Cinema Cameras</h3>`,
		},
		{
			name: "paragraph break never closes the last paragraph",
			in:   "Hello\n\nWorld",
			want: `<p class="mb-4">Hello</p><p class="mb-4">World`,
		},
		{
			name: "bullet list",
			in:   "- one\n- two",
			want: ulOpen + liOpen + "one</li>\n" + liOpen + "two</li></ul>",
		},
		{
			name: "numbered item keeps its number",
			in:   "1. First",
			want: ulOpen + liOpen + "1. First</li></ul>",
		},
		{
			name: "bold at line start",
			in:   "**Bold** start and mid **not**",
			want: `<strong class="font-semibold">Bold</strong> start and mid **not**`,
		},
		{
			name: "bold mid-line is untouched",
			in:   "text with **bold** inside",
			want: `<p class="mb-4">text with **bold** inside`,
		},
		{
			name: "italic line still gets a paragraph",
			in:   "*Italic* line",
			want: `<p class="mb-4"><em class="italic">Italic</em> line`,
		},
		{
			name: "trailing newline opens an empty paragraph",
			in:   "Hello\n",
			want: "<p class=\"mb-4\">Hello\n<p class=\"mb-4\">",
		},
		{
			name: "one list spans separated items",
			in:   "- a\n\ntext\n\n- b",
			want: ulOpen + liOpen + `a</li></p><p class="mb-4">text</p><p class="mb-4">` + liOpen + "b</li></ul>",
		},
		{
			name: "empty input",
			in:   "",
			want: `<p class="mb-4">`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Legacy{}.Render(tt.in)
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			if got != tt.want {
				t.Errorf("Render(%q)\n got: %q\nwant: %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestLegacyRenderLongerDocument(t *testing.T) {
	src := "# Title\n\nIntro line\n\n## Part\n\n- a\n- b"
	got, _ := Legacy{}.Render(src)

	for _, want := range []string{
		h1Open + "Title</h1></p>",
		`<p class="mb-4">Intro line</p>`,
		`<h2 id="Part"`,
		ulOpen + liOpen + "a</li>\n" + liOpen + "b</li></ul>",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q\nfull: %s", want, got)
		}
	}
}

func TestByName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
		legacy  bool
	}{
		{name: "", legacy: true},
		{name: "legacy", legacy: true},
		{name: " Goldmark ", legacy: false},
		{name: "pandoc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := ByName(tt.name)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ByName: %v", err)
			}
			_, isLegacy := r.(Legacy)
			if isLegacy != tt.legacy {
				t.Errorf("ByName(%q) = %T", tt.name, r)
			}
		})
	}
}
