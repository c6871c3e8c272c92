package teal

// MetaMethod is an operator overload slot. Its value is the reserved name
// used in the rendered declaration.
type MetaMethod string

const (
	MetaAdd      MetaMethod = "__add"
	MetaSub      MetaMethod = "__sub"
	MetaMul      MetaMethod = "__mul"
	MetaDiv      MetaMethod = "__div"
	MetaMod      MetaMethod = "__mod"
	MetaPow      MetaMethod = "__pow"
	MetaUnm      MetaMethod = "__unm"
	MetaIDiv     MetaMethod = "__idiv"
	MetaBAnd     MetaMethod = "__band"
	MetaBOr      MetaMethod = "__bor"
	MetaBXor     MetaMethod = "__bxor"
	MetaBNot     MetaMethod = "__bnot"
	MetaShl      MetaMethod = "__shl"
	MetaShr      MetaMethod = "__shr"
	MetaConcat   MetaMethod = "__concat"
	MetaLen      MetaMethod = "__len"
	MetaEq       MetaMethod = "__eq"
	MetaLt       MetaMethod = "__lt"
	MetaLe       MetaMethod = "__le"
	MetaIndex    MetaMethod = "__index"
	MetaNewIndex MetaMethod = "__newindex"
	MetaCall     MetaMethod = "__call"
	MetaToString MetaMethod = "__tostring"
	MetaPairs    MetaMethod = "__pairs"
	MetaClose    MetaMethod = "__close"
)

var metaMethodsByOperator = map[string]MetaMethod{
	"add":      MetaAdd,
	"sub":      MetaSub,
	"mul":      MetaMul,
	"div":      MetaDiv,
	"mod":      MetaMod,
	"pow":      MetaPow,
	"unm":      MetaUnm,
	"idiv":     MetaIDiv,
	"band":     MetaBAnd,
	"bor":      MetaBOr,
	"bxor":     MetaBXor,
	"bnot":     MetaBNot,
	"shl":      MetaShl,
	"shr":      MetaShr,
	"concat":   MetaConcat,
	"len":      MetaLen,
	"eq":       MetaEq,
	"lt":       MetaLt,
	"le":       MetaLe,
	"index":    MetaIndex,
	"newindex": MetaNewIndex,
	"call":     MetaCall,
	"tostring": MetaToString,
	"pairs":    MetaPairs,
	"close":    MetaClose,
}

// CustomMetaMethod returns a meta-method with a caller-chosen reserved name.
func CustomMetaMethod(name string) MetaMethod {
	return MetaMethod(name)
}

// LookupMetaMethod maps an operator name such as "add" or "tostring" to its
// meta-method.
func LookupMetaMethod(operator string) (MetaMethod, bool) {
	m, ok := metaMethodsByOperator[operator]
	return m, ok
}

// Name returns the reserved name.
func (m MetaMethod) Name() string {
	return string(m)
}
