package filters

import (
	"context"
	"strings"
	"testing"

	"git.home.luguber.info/inful/sitegen/internal/content"
)

func TestMarkdownBasic(t *testing.T) {
	f := &MarkdownFilter{}
	out, err := f.Apply(context.Background(), content.Textual("# Hello\n\nBody *here*.\n"), Request{})
	if err != nil {
		t.Fatal(err)
	}
	html := out.Text()
	if !strings.Contains(html, "<h1>Hello</h1>") {
		t.Errorf("missing heading in %q", html)
	}
	if !strings.Contains(html, "<em>here</em>") {
		t.Errorf("missing emphasis in %q", html)
	}
	if out.IsBinary() {
		t.Error("markdown output must be textual")
	}
}

func TestMarkdownGFMArg(t *testing.T) {
	f := &MarkdownFilter{}
	src := content.Textual("~~gone~~\n")

	plain, err := f.Apply(context.Background(), src, Request{})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(plain.Text(), "<del>") {
		t.Error("strikethrough must be off without the gfm arg")
	}

	gfm, err := f.Apply(context.Background(), src, Request{Args: Args{"gfm": true}})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(gfm.Text(), "<del>gone</del>") {
		t.Errorf("strikethrough missing with gfm enabled: %q", gfm.Text())
	}
}
