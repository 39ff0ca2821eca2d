package maqui

// runtime holds the C ABI functions the generated IR calls into: the handful of libc
// entry points string ownership and printing need. Every function here is declared, never
// defined — they're resolved by whatever C runtime the final linking step supplies.
type runtime struct {
	printf  *Function
	malloc  *Function
	realloc *Function
	free    *Function
	strlen  *Function
	memcpy  *Function
	abort   *Function
}

// declareRuntime declares the full runtime ABI against b's module.
func declareRuntime(b *Builder) *runtime {
	printf := b.DeclareFunction("printf", I32, PtrI8)
	MarkVariadic(printf)

	return &runtime{
		printf:  printf,
		malloc:  b.DeclareFunction("malloc", PtrI8, I64),
		realloc: b.DeclareFunction("realloc", PtrI8, PtrI8, I64),
		free:    b.DeclareFunction("free", Void, PtrI8),
		strlen:  b.DeclareFunction("strlen", I64, PtrI8),
		memcpy:  b.DeclareFunction("memcpy", PtrI8, PtrI8, PtrI8, I64),
		abort:   b.DeclareFunction("abort", Void),
	}
}
