package htmldoc

import (
	"strings"
	"testing"
)

func TestElementsByClass(t *testing.T) {
	doc, err := ParseString(`<div class="a b"><p class="b">x</p><p class="bb">y</p></div><span class=" b ">z</span>`)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}

	got := doc.ElementsByClass("b")
	if len(got) != 3 {
		t.Fatalf("matches = %d, want 3", len(got))
	}
	wantTags := []string{"div", "p", "span"}
	for i, el := range got {
		if tag := el.(*Element).Tag(); tag != wantTags[i] {
			t.Errorf("match %d tag = %q, want %q", i, tag, wantTags[i])
		}
	}
	if n := len(doc.ElementsByClass("missing")); n != 0 {
		t.Errorf("missing class matched %d elements", n)
	}
}

func TestTextContent(t *testing.T) {
	doc, err := ParseString("<pre class=\"c\"><span>fn</span> main() {\n}\n</pre>")
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	el := doc.ElementsByClass("c")[0]
	if got := el.TextContent(); got != "fn main() {\n}\n" {
		t.Errorf("TextContent = %q", got)
	}
}

func TestVisibleText(t *testing.T) {
	doc, err := ParseString("<code class=\"c\"><span class=\"boring\">fn main() {\n</span>" +
		"    run();\n<span hidden>secret\n</span><span class=\"boring x\">}\n</span></code>")
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	el := doc.ElementsByClass("c")[0]
	if got := el.VisibleText(); got != "    run();\n" {
		t.Errorf("VisibleText = %q", got)
	}
	if got := el.TextContent(); !strings.Contains(got, "fn main()") {
		t.Errorf("TextContent should keep hidden lines, got %q", got)
	}
}

func TestInsertBeforeAndAppend(t *testing.T) {
	doc, err := ParseString(`<div id="p"><pre class="code">x</pre></div>`)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	code := doc.ElementsByClass("code")[0]
	parent := code.Parent()
	if parent == nil {
		t.Fatal("code block has no parent")
	}

	box := doc.CreateElement("DIV")
	box.AddClass("box")
	box.AddClass("box")
	if err := parent.InsertBefore(box, code); err != nil {
		t.Fatalf("InsertBefore: %v", err)
	}
	child := doc.CreateElement("span")
	child.SetAttribute("title", "t")
	child.SetAttribute("title", "u")
	if err := box.AppendChild(child); err != nil {
		t.Fatalf("AppendChild: %v", err)
	}

	out := doc.String()
	want := `<div id="p"><div class="box"><span title="u"></span></div><pre class="code">x</pre></div>`
	if !strings.Contains(out, want) {
		t.Errorf("rendered = %s\nwant substring %s", out, want)
	}
}

func TestInsertBeforeRejectsNonChild(t *testing.T) {
	doc, err := ParseString(`<div><pre class="code">x</pre></div><div class="other"></div>`)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	other := doc.ElementsByClass("other")[0]
	code := doc.ElementsByClass("code")[0]
	if err := other.InsertBefore(doc.CreateElement("div"), code); err == nil {
		t.Error("expected error when reference is not a child")
	}
}

func TestQueryClassExcludesSelf(t *testing.T) {
	doc, err := ParseString(`<div class="buttons"><i class="buttons"></i></div>`)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	outer := doc.ElementsByClass("buttons")[0]
	inner := outer.QueryClass("buttons")
	if inner == nil || inner.(*Element).Tag() != "i" {
		t.Errorf("QueryClass should return the descendant, got %v", inner)
	}
}

func TestDetachedParent(t *testing.T) {
	doc, err := ParseString(``)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	if doc.CreateElement("div").Parent() != nil {
		t.Error("new element should have no parent")
	}
}
