package platform

import (
	lua "github.com/yuin/gopher-lua"
)

// InjectLuaTable creates a read-only platform table and installs it into
// the Lua state as the global "platform". Recipe files use it for
// platform-conditional entries, e.g.:
//
//	tag = platform.is_macos and "v1.2.0" or "v1.1.0"
func InjectLuaTable(L *lua.LState, profile *Profile) error {
	table := L.NewTable()

	L.SetField(table, "os", lua.LString(profile.OS))
	L.SetField(table, "arch", lua.LString(profile.Arch))
	L.SetField(table, "arch_raw", lua.LString(profile.ArchRaw))

	L.SetField(table, "is_linux", lua.LBool(profile.IsLinux()))
	L.SetField(table, "is_macos", lua.LBool(profile.IsMacOS()))
	L.SetField(table, "is_windows", lua.LBool(profile.IsWindows()))

	L.SetField(table, "is_x86_64", lua.LBool(profile.Arch == ArchX8664))
	L.SetField(table, "is_arm64", lua.LBool(profile.Arch == ArchARM64))
	L.SetField(table, "is_armv7", lua.LBool(profile.Arch == ArchARMv7))

	if profile.IsLinux() && profile.Distro != "" {
		distroTable := L.NewTable()
		L.SetField(distroTable, "id", lua.LString(profile.Distro))
		L.SetField(distroTable, "family", lua.LString(profile.Family))
		L.SetField(distroTable, "version", lua.LString(profile.DistroVersion))
		L.SetField(table, "distro", distroTable)
	} else {
		L.SetField(table, "distro", lua.LNil)
	}

	// Helper: when(condition, value) returns value or nil, which lets
	// recipe tables drop entries for foreign platforms.
	whenFunc := L.NewFunction(func(L *lua.LState) int {
		cond := L.CheckBool(1)
		value := L.Get(2)
		if cond {
			L.Push(value)
		} else {
			L.Push(lua.LNil)
		}
		return 1
	})
	L.SetField(table, "when", whenFunc)

	L.SetGlobal("platform", makeReadOnly(L, table))
	return nil
}

// makeReadOnly wraps a Lua table in a write-protected proxy. Reads pass
// through to the original table; any write raises a Lua error.
func makeReadOnly(L *lua.LState, table *lua.LTable) *lua.LTable {
	mt := L.NewTable()
	L.SetField(mt, "__index", table)
	L.SetField(mt, "__newindex", L.NewFunction(func(L *lua.LState) int {
		L.RaiseError("platform table is read-only and cannot be modified")
		return 0
	}))
	L.SetField(mt, "__metatable", lua.LString("protected"))

	proxy := L.NewTable()
	L.SetMetatable(proxy, mt)
	return proxy
}
