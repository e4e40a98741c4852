package internal

// anyValue is the type behind the Any sentinel. Only one value of it ever
// exists, so interface equality against Any is an identity test.
type anyValue struct{}

func (*anyValue) String() string { return "<ANY>" }

// Any matches every listener at dispatch time, and every sender when used
// as a slot's listener. It carries no state and is safe to compare from any
// goroutine.
var Any any = &anyValue{}
