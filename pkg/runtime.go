package flint

import "fmt"

// runtimeProc describes one of the eight predefined I/O procedures
// installed into the global scope before parsing begins (spec.md §4.4).
type runtimeProc struct {
	name      string
	paramType Type
	direction Direction
	body      string
}

// runtimeProcs is the closed set of built-in procedures. Each is declared
// with a single parameter named my_<type>; get* parameters are `out`, put*
// parameters are `in`.
var runtimeProcs = []runtimeProc{
	{"getString", TypeString, DirectionOut, stringGetBody},
	{"putString", TypeString, DirectionIn, stringPutBody},
	{"getBool", TypeBool, DirectionOut, boolGetBody},
	{"putBool", TypeBool, DirectionIn, boolPutBody},
	{"getInteger", TypeInteger, DirectionOut, integerGetBody},
	{"putInteger", TypeInteger, DirectionIn, integerPutBody},
	{"getFloat", TypeFloat, DirectionOut, floatGetBody},
	{"putFloat", TypeFloat, DirectionIn, floatPutBody},
}

// InstallRuntimeProcedures declares the eight runtime procedures as globals
// in table. Their label ids are fixed at 1 rather than drawn from the
// shared mint_label() counter: each runtime procedure's name is already
// unique (getString_1, putString_1, ...), and reserving them from the same
// sequence as user labels would shift every user-code label id by eight,
// breaking the literal "empty_1" label spec.md's own worked example expects
// of the first user program. See DESIGN.md.
func InstallRuntimeProcedures(table *SymbolTable, em *Emitter) map[string]int {
	labels := make(map[string]int, len(runtimeProcs))

	for _, rp := range runtimeProcs {
		const labelID = 1
		labels[rp.name] = labelID

		param := &Identifier{Name: "my_" + rp.paramType.String(), Type: rp.paramType}
		id := &Identifier{
			Name:   rp.name,
			Type:   TypeProcedure,
			Params: []Parameter{{ID: param, Direction: rp.direction}},
			MemPtr: labelID,
		}

		if err := table.Add(id, true); err != nil {
			panic("flint: duplicate runtime procedure " + rp.name)
		}
	}

	return labels
}

// EmitRuntimeProcedures writes the eight runtime procedure bodies into the
// epilogue (spec.md §6 item 5). Each follows the same MM[R[FP]]-indirect
// call/return protocol as a user procedure (§4.4, "follow the same
// call/return protocol") rather than the register-0 convention the label
// enumeration in §6 item 5 suggests in passing — see DESIGN.md for why the
// uniform protocol was chosen where the two descriptions disagree.
func EmitRuntimeProcedures(em *Emitter, labels map[string]int) {
	for _, rp := range runtimeProcs {
		labelID := labels[rp.name]

		em.emit(fmt.Sprintf("%s_%d:", rp.name, labelID))
		em.TabPush()
		em.emit(fmt.Sprintf("goto %s_%d_begin;", rp.name, labelID))
		em.emit("")
		em.emit(fmt.Sprintf("%s_%d_begin:", rp.name, labelID))
		em.TabPush()
		em.RawText(rp.body)
		em.emit("R[SP] = R[FP];")
		em.emit("goto *(void*)MM[R[FP]];")
		em.TabPop()
		em.TabPop()
		em.emit("")
	}
}

// stringGetBody reads a line into the scratch STR_BUF, then bump-allocates
// a copy of it onto HEAP via R[HP] so the returned pointer survives past the
// next getString call (STR_BUF itself is reused on every call).
const stringGetBody = `fgets(STR_BUF, BUF_SIZE, stdin);
STR_BUF[strcspn(STR_BUF, "\n")] = 0;
strcpy(&HEAP[R[HP]], STR_BUF);
MM[R[FP] + 2] = (int)&HEAP[R[HP]];
R[HP] = R[HP] + strlen(STR_BUF) + 1;
`

const stringPutBody = `printf("%s\n", (char*)MM[R[FP] + 2]);
`

const boolGetBody = `scanf("%d", &MM[R[FP] + 2]);
`

const boolPutBody = `printf(MM[R[FP] + 2] ? "TRUE\n" : "FALSE\n");
`

const integerGetBody = `scanf("%d", &MM[R[FP] + 2]);
`

const integerPutBody = `printf("%d\n", MM[R[FP] + 2]);
`

const floatGetBody = `scanf("%f", &R_FLOAT_1);
memcpy(&MM[R[FP] + 2], &R_FLOAT_1, sizeof(float));
`

const floatPutBody = `memcpy(&R_FLOAT_1, &MM[R[FP] + 2], sizeof(float));
printf("%f\n", R_FLOAT_1);
`
