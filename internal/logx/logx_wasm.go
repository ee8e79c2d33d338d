//go:build js && wasm

package logx

import (
	"fmt"
	"syscall/js"
)

// consoleLogger routes log records to the browser console, falling back
// to fmt when no console is present (e.g. under a non-browser JS host).
type consoleLogger struct{}

func newDefault() Logger {
	return &consoleLogger{}
}

func (c *consoleLogger) Debug(msg string, args ...any) { c.write("debug", msg, args) }
func (c *consoleLogger) Info(msg string, args ...any)  { c.write("info", msg, args) }
func (c *consoleLogger) Warn(msg string, args ...any)  { c.write("warn", msg, args) }
func (c *consoleLogger) Error(msg string, args ...any) { c.write("error", msg, args) }

func (c *consoleLogger) write(level, msg string, args []any) {
	line := fmt.Sprintf("[%s] %s %v", level, msg, args)
	g := js.Global()
	if !g.Truthy() {
		fmt.Println(line)
		return
	}
	console := g.Get("console")
	if !console.Truthy() {
		fmt.Println(line)
		return
	}
	method := level
	if !console.Get(method).Truthy() {
		method = "log"
	}
	console.Call(method, line)
}
