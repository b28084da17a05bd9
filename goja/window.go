package goja

import (
	"net/url"

	"github.com/dop251/goja"
)

// window holds the host objects installed into a VM. They are reported as
// opaque values rather than converted.
type window struct {
	hosts map[*goja.Object]string
}

func installWindow(vm *goja.Runtime, target string) *window {
	w := &window{hosts: make(map[*goja.Object]string)}
	global := vm.GlobalObject()
	w.hosts[global] = "Window"

	noop := func(goja.FunctionCall) goja.Value { return goja.Undefined() }
	null := func(goja.FunctionCall) goja.Value { return goja.Null() }

	_ = vm.Set("window", global)
	_ = vm.Set("self", global)
	_ = vm.Set("setTimeout", noop)
	_ = vm.Set("clearTimeout", noop)
	_ = vm.Set("setInterval", noop)
	_ = vm.Set("clearInterval", noop)
	_ = vm.Set("requestAnimationFrame", noop)
	_ = vm.Set("addEventListener", noop)
	_ = vm.Set("removeEventListener", noop)

	console := vm.NewObject()
	for _, level := range []string{"log", "info", "warn", "error", "debug"} {
		_ = console.Set(level, noop)
	}
	_ = vm.Set("console", console)
	w.hosts[console] = "Console"

	document := vm.NewObject()
	_ = document.Set("readyState", "complete")
	for _, fn := range []string{"getElementById", "querySelector", "createElement"} {
		_ = document.Set(fn, null)
	}
	_ = document.Set("querySelectorAll", func(goja.FunctionCall) goja.Value { return vm.NewArray() })
	_ = document.Set("getElementsByTagName", func(goja.FunctionCall) goja.Value { return vm.NewArray() })
	_ = document.Set("addEventListener", noop)
	_ = vm.Set("document", document)
	w.hosts[document] = "HTMLDocument"

	navigator := vm.NewObject()
	_ = navigator.Set("userAgent", "Mozilla/5.0 (compatible; pagedata)")
	_ = navigator.Set("language", "en-US")
	_ = vm.Set("navigator", navigator)
	w.hosts[navigator] = "Navigator"

	location := vm.NewObject()
	if u, err := url.Parse(target); err == nil {
		_ = location.Set("href", u.String())
		_ = location.Set("protocol", u.Scheme+":")
		_ = location.Set("host", u.Host)
		_ = location.Set("hostname", u.Hostname())
		_ = location.Set("pathname", u.Path)
		_ = location.Set("search", prefixed("?", u.RawQuery))
		_ = location.Set("hash", prefixed("#", u.Fragment))
	}
	_ = vm.Set("location", location)
	w.hosts[location] = "Location"

	return w
}

func prefixed(prefix, s string) string {
	if s == "" {
		return ""
	}
	return prefix + s
}
