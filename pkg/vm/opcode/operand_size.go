package opcode

// OperandSize describes the static operand layout of an instruction. Size is
// the fixed operand length in bytes; Prefix is the length of a preceding
// little-endian size prefix for variable-length operands. The two are
// mutually exclusive.
type OperandSize struct {
	Prefix int
	Size   int
}

var operandSizes = map[Opcode]OperandSize{
	PUSHINT8:   {Size: 1},
	PUSHINT16:  {Size: 2},
	PUSHINT32:  {Size: 4},
	PUSHINT64:  {Size: 8},
	PUSHINT128: {Size: 16},
	PUSHINT256: {Size: 32},

	PUSHA: {Size: 4},

	PUSHDATA1: {Prefix: 1},
	PUSHDATA2: {Prefix: 2},
	PUSHDATA4: {Prefix: 4},

	JMP:       {Size: 1},
	JMPL:      {Size: 4},
	JMPIF:     {Size: 1},
	JMPIFL:    {Size: 4},
	JMPIFNOT:  {Size: 1},
	JMPIFNOTL: {Size: 4},
	JMPEQ:     {Size: 1},
	JMPEQL:    {Size: 4},
	JMPNE:     {Size: 1},
	JMPNEL:    {Size: 4},
	JMPGT:     {Size: 1},
	JMPGTL:    {Size: 4},
	JMPGE:     {Size: 1},
	JMPGEL:    {Size: 4},
	JMPLT:     {Size: 1},
	JMPLTL:    {Size: 4},
	JMPLE:     {Size: 1},
	JMPLEL:    {Size: 4},
	CALL:      {Size: 1},
	CALLL:     {Size: 4},
	CALLT:     {Size: 2},
	TRY:       {Size: 2},
	TRYL:      {Size: 8},
	ENDTRY:    {Size: 1},
	ENDTRYL:   {Size: 4},
	SYSCALL:   {Size: 4},

	INITSSLOT: {Size: 1},
	INITSLOT:  {Size: 2},
	LDSFLD:    {Size: 1},
	STSFLD:    {Size: 1},
	LDLOC:     {Size: 1},
	STLOC:     {Size: 1},
	LDARG:     {Size: 1},
	STARG:     {Size: 1},

	NEWARRAYT: {Size: 1},
	ISTYPE:    {Size: 1},
	CONVERT:   {Size: 1},
}

// Operand returns the operand layout of the given opcode and true if it has
// one. Opcodes without operands return a zero OperandSize and false.
func Operand(op Opcode) (OperandSize, bool) {
	sz, ok := operandSizes[op]
	return sz, ok
}
