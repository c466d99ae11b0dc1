package photonvox

var (
	Debug = false // set to true for verbose debug output

	// Compile time check that the Reed-Solomon wrapper implements the
	// coder capability the erasure layer is written against.
	_ erasureCoder = (*rsCoder)(nil)
)
