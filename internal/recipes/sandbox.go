package recipes

import (
	lua "github.com/yuin/gopher-lua"
)

// sandboxVM strips a Lua VM down to what a declarative recipe file needs.
// Everything that can touch the system or load external code is removed:
// os, io, require, dofile, loadfile, load, loadstring, debug. The string,
// table, and math libraries and the basic utilities stay.
func sandboxVM(L *lua.LState) {
	L.SetGlobal("os", lua.LNil)
	L.SetGlobal("io", lua.LNil)
	L.SetGlobal("require", lua.LNil)
	L.SetGlobal("dofile", lua.LNil)
	L.SetGlobal("loadfile", lua.LNil)
	L.SetGlobal("load", lua.LNil)
	L.SetGlobal("loadstring", lua.LNil)
	L.SetGlobal("debug", lua.LNil)
}

// newSandboxedVM creates the Lua state recipe files run in.
func newSandboxedVM() *lua.LState {
	L := lua.NewState()
	sandboxVM(L)
	return L
}
