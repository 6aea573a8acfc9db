package opcode

// Price returns the base execution fee of the given opcode measured in the
// smallest GAS units.
func Price(op Opcode) int64 {
	switch op {
	case PUSHINT8, PUSHINT16, PUSHINT32, PUSHINT64, PUSHNULL, PUSHM1,
		PUSH0, PUSH1, PUSH2, PUSH3, PUSH4, PUSH5, PUSH6, PUSH7, PUSH8,
		PUSH9, PUSH10, PUSH11, PUSH12, PUSH13, PUSH14, PUSH15, PUSH16,
		NOP, ASSERT:
		return 1
	case PUSHINT128, PUSHINT256, PUSHA, TRY, TRYL, SIGN, ABS, NEGATE,
		INC, DEC, NOT, NZ, SIZE:
		return 1 << 2
	case PUSHDATA1, AND, OR, XOR, ADD, SUB, MUL, DIV, MOD, SHL, SHR,
		BOOLAND, BOOLOR, NUMEQUAL, NUMNOTEQUAL, LT, LE, GT, GE, MIN, MAX,
		WITHIN, NEWMAP:
		return 1 << 3
	case XDROP, CLEAR, ROLL, REVERSEN, INITSSLOT, NEWARRAY0, NEWSTRUCT0,
		KEYS, REMOVE, CLEARITEMS:
		return 1 << 4
	case EQUAL, NOTEQUAL, MODMUL:
		return 1 << 5
	case INITSLOT, POW, HASKEY, PICKITEM:
		return 1 << 6
	case NEWBUFFER:
		return 1 << 8
	case PUSHDATA2, CALL, CALLL, CALLA, THROW, NEWARRAY, NEWARRAYT, NEWSTRUCT:
		return 1 << 9
	case MEMCPY, CAT, SUBSTR, LEFT, RIGHT, SQRT, MODPOW, PACKMAP,
		PACKSTRUCT, PACK, UNPACK:
		return 1 << 11
	case PUSHDATA4:
		return 1 << 12
	case VALUES, APPEND, SETITEM, REVERSEITEMS, CONVERT:
		return 1 << 13
	case CALLT:
		return 1 << 15
	case ABORT, RET, SYSCALL:
		return 0
	default:
		return 1 << 1
	}
}
