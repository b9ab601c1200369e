package markdown

import (
	"reflect"
	"testing"
)

func TestTableOfContents(t *testing.T) {
	src := "# Choosing a Camera\n\nIntro.\n\n## Budget & Costs\n\n### 4K vs. 8K\n\n#### Too deep\n\nNot a # heading"

	got := TableOfContents(src)
	want := []Heading{
		{Level: 1, Text: "Choosing a Camera", ID: "choosing-a-camera"},
		{Level: 2, Text: "Budget & Costs", ID: "budget-costs"},
		{Level: 3, Text: "4K vs. 8K", ID: "4k-vs-8k"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TableOfContents =\n%+v\nwant\n%+v", got, want)
	}
}

func TestTableOfContentsEmpty(t *testing.T) {
	got := TableOfContents("just text")
	if got == nil || len(got) != 0 {
		t.Errorf("TableOfContents = %#v, want empty non-nil slice", got)
	}
}
