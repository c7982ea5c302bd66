//go:build js && wasm

package carousel

import "syscall/js"

// BrowserDocument binds Document to the global window and document objects.
type BrowserDocument struct {
	window js.Value
	doc    js.Value
}

// NewBrowserDocument returns the document of the running page.
func NewBrowserDocument() *BrowserDocument {
	w := js.Global()
	return &BrowserDocument{window: w, doc: w.Get("document")}
}

func (d *BrowserDocument) Query(selector string) Element {
	return wrap(d.doc.Call("querySelector", selector))
}

func (d *BrowserDocument) ByID(id string) Element {
	return wrap(d.doc.Call("getElementById", id))
}

func (d *BrowserDocument) CreateElement(tag string) Element {
	return wrap(d.doc.Call("createElement", tag))
}

func (d *BrowserDocument) ViewportWidth() int {
	return d.window.Get("innerWidth").Int()
}

// jsElement holds the js.Func callbacks it registers so they stay reachable
// for the lifetime of the page.
type jsElement struct {
	v     js.Value
	funcs []js.Func
}

func wrap(v js.Value) Element {
	if v.IsNull() || v.IsUndefined() {
		return nil
	}
	return &jsElement{v: v}
}

func (e *jsElement) QueryAll(selector string) []Element {
	list := e.v.Call("querySelectorAll", selector)
	n := list.Length()
	out := make([]Element, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, &jsElement{v: list.Index(i)})
	}
	return out
}

func (e *jsElement) AddListener(event string, fn func(Event)) {
	cb := js.FuncOf(func(this js.Value, args []js.Value) any {
		var ev js.Value
		if len(args) > 0 {
			ev = args[0]
		}
		fn(jsEvent{kind: event, v: ev})
		return nil
	})
	e.funcs = append(e.funcs, cb)
	e.v.Call("addEventListener", event, cb)
}

func (e *jsElement) SetStyle(property, value string) {
	e.v.Get("style").Set(property, value)
}

func (e *jsElement) SetDisabled(disabled bool) {
	e.v.Set("disabled", disabled)
}

func (e *jsElement) ToggleClass(class string, on bool) {
	e.v.Get("classList").Call("toggle", class, on)
}

func (e *jsElement) SetAttribute(name, value string) {
	e.v.Call("setAttribute", name, value)
}

func (e *jsElement) AppendChild(child Element) {
	if c, ok := child.(*jsElement); ok {
		e.v.Call("appendChild", c.v)
	}
}

type jsEvent struct {
	kind string
	v    js.Value
}

// ClientX reads touches[0] on touchstart, changedTouches[0] on touchend and the
// event itself otherwise.
func (e jsEvent) ClientX() float64 {
	if e.v.IsUndefined() || e.v.IsNull() {
		return 0
	}
	var src js.Value
	switch e.kind {
	case "touchstart":
		src = e.v.Get("touches").Index(0)
	case "touchend":
		src = e.v.Get("changedTouches").Index(0)
	default:
		src = e.v
	}
	if src.IsUndefined() || src.IsNull() {
		return 0
	}
	return src.Get("clientX").Float()
}
