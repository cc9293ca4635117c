package flint

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Emitted memory/register geometry (spec.md §6). These are compile-time
// constants of the *emitted* program, not of this Go process.
const (
	mmSize   = 65536
	regSize  = 2048
	bufSize  = 256
	heapSize = 65536

	regSP = 1
	regFP = 2
	regHP = 3

	firstGPRegister = 4
)

// Emitter accumulates textual intermediate-target lines and owns register
// allocation, label id minting, and the frame/stack pointer discipline
// (spec.md §4.4). It is the single owner of the code buffer; the buffer
// grows monotonically until Commit, and is never written to disk on an
// error path (spec.md §5).
type Emitter struct {
	debug bool

	buf      strings.Builder
	tabCount int

	reg      int
	labelID  int
	callID   int
	localPtr int
	paramPtr int

	globalOffset int
}

// NewEmitter creates an Emitter. When debug is true, commentf lines are
// included in the generated text (the -d/--debug CLI flag, spec.md §6).
func NewEmitter(debug bool) *Emitter {
	return &Emitter{
		debug:    debug,
		reg:      firstGPRegister - 1,
		localPtr: 1,
		paramPtr: 1,
	}
}

// Prologue emits the MM/R array declarations, scratch float registers, the
// string buffer, and the stack/frame/heap pointer initialization (spec.md
// §6 item 1).
func (e *Emitter) Prologue() {
	e.emitRaw(fmt.Sprintf(`#include <stdio.h>
#include <string.h>

#define MM_SIZE %d
#define R_SIZE  %d
#define BUF_SIZE %d
#define HEAP_SIZE %d

#define SP %d
#define FP %d
#define HP %d

int main(void)
{
int MM[MM_SIZE];
int R[R_SIZE];
float R_FLOAT_1;
float R_FLOAT_2;
char STR_BUF[BUF_SIZE];
char HEAP[HEAP_SIZE];

R[SP] = MM_SIZE - 1;
R[FP] = MM_SIZE - 1;
R[HP] = 0;

`, mmSize, regSize, bufSize, heapSize, regSP, regFP, regHP))
}

// ProgramEntry emits the return-address push, the jump to the program's
// entry point, and the fallthrough exit label that returns 0 (spec.md
// §4.4). It must run before the program body is parsed.
func (e *Emitter) ProgramEntry(name string, labelID int) {
	e.commentf("setting program return address")
	e.emitf("MM[R[FP]] = (int)&&%s;", exitLabel(name, labelID))
	e.emitf("goto %s;", entryLabel(name, labelID))
	e.emit("")
	e.commentf("program exit point")
	e.emit(exitLabel(name, labelID) + ":")
	e.TabPush()
	e.emit("return 0;")
	e.TabPop()
	e.emit("")
	e.emit(entryLabel(name, labelID) + ":")
	e.TabPush()
	e.emitf("goto %s;", beginLabel(name, labelID))
	e.TabPop()
	e.emit("")
}

// ProcedureHeader emits a procedure's entry label and its immediate jump to
// the body label (spec.md §8 boundary: "a procedure with no parameters
// compiles; its header emits an immediate jump to its _begin").
func (e *Emitter) ProcedureHeader(name string, labelID int) {
	e.emit(entryLabel(name, labelID) + ":")
	e.TabPush()
	e.emitf("goto %s;", beginLabel(name, labelID))
	e.emit("")
}

// BodyBegin emits the `_begin` label that starts a procedure or program
// body, and — if localSize is non-zero — the stack allocation for local
// variables.
func (e *Emitter) BodyBegin(name string, labelID, localSize int) {
	e.emit(beginLabel(name, labelID) + ":")
	e.TabPush()

	if localSize != 0 {
		e.commentf("allocating space for local variables")
		e.emitf("R[SP] = R[SP] - %d;", localSize)
	}
}

// ProcedureEnd emits the return-to-caller sequence shared by an explicit
// `return` statement and the implicit fallthrough at `end procedure`.
func (e *Emitter) ProcedureEnd() {
	e.emitf("R[SP] = R[FP];")
	e.emitf("goto *(void*)MM[R[FP]];")
}

// EndBody closes the tab scope opened by BodyBegin.
func (e *Emitter) EndBody() {
	e.TabPop()
	e.emit("")
}

// EndHeader closes the tab scope opened by ProcedureHeader.
func (e *Emitter) EndHeader() {
	e.TabPop()
}

// CallBegin emits the caller-side frame setup: save the old FP, then make
// the new FP point at the return-address cell (spec.md §4.4 proc_call).
func (e *Emitter) CallBegin() {
	e.commentf("saving caller FP")
	e.emit("R[SP] = R[SP] - 1;")
	e.emit("MM[R[SP]] = R[FP];")
	e.commentf("setting return address (this becomes FP)")
	e.emit("R[SP] = R[SP] - 1;")
	e.emit("R[FP] = R[SP];")
}

// CallInvoke mints a unique return-site label (disambiguated by callID so
// repeated calls to the same procedure never collide), pushes it as the
// return address, jumps to the procedure, and emits the return label.
func (e *Emitter) CallInvoke(name string, labelID, callID int) {
	e.emitf("MM[R[SP]] = (int)&&%s;", callReturnLabel(name, labelID, callID))
	e.emitf("goto %s;", entryLabel(name, labelID))
	e.emit(callReturnLabel(name, labelID, callID) + ":")
}

// CallRestoreFP restores the caller's FP from the stack after a call
// returns.
func (e *Emitter) CallRestoreFP() {
	e.commentf("restoring caller FP")
	e.emit("R[SP] = R[SP] + 1;")
	e.emit("R[FP] = MM[R[SP]];")
}

// CallPopParam pops one parameter cell off the stack after a call returns.
// When the parameter is `out`, the popped value is written back through
// addrReg, a register already holding the destination address (computed by
// the caller via NameAddress before the call, while still in its own frame —
// valid again once CallRestoreFP has put the caller's FP back).
func (e *Emitter) CallPopParam(isOut bool, addrReg int) {
	e.emit("R[SP] = R[SP] + 1;")
	if isOut {
		e.emitf("MM[R[%d]] = MM[R[SP]];", addrReg)
	}
}

// CallEnd moves SP back onto the caller's local stack after every
// parameter has been popped.
func (e *Emitter) CallEnd() {
	e.commentf("moving to caller local stack")
	e.emit("R[SP] = R[SP] + 1;")
}

// PushArgument pushes the value in reg onto the stack ahead of a call.
// Arguments are pushed in reverse source order so the first parameter ends
// up closest to the callee's FP (spec.md §4.4 param_push).
func (e *Emitter) PushArgument(reg int) {
	e.commentf("pushing argument onto the stack")
	e.emit("R[SP] = R[SP] - 1;")
	e.emitf("MM[R[SP]] = R[%d];", reg)
}

// NameAddress computes the address of id (adding idxReg's value when id is
// an array and idxReg is non-zero) into a freshly minted register, applying
// the location-specific offset convention (spec.md §4.4 name_load/
// name_store share this address computation).
func (e *Emitter) NameAddress(id *Identifier, location IdentifierLocation, idxReg int) int {
	addrReg := e.MintRegister()

	switch location {
	case LocationGlobal:
		e.emitf("R[%d] = %d;", addrReg, e.globalAddress(id.MemPtr))
	case LocationParam:
		e.emitf("R[%d] = %d;", addrReg, id.MemPtr)
	default:
		e.emitf("R[%d] = %d;", addrReg, id.MemPtr)
	}

	if id.IsArray() && idxReg != 0 {
		e.emitf("R[%d] = R[%d] + R[%d];", addrReg, addrReg, idxReg)
	}

	switch location {
	case LocationGlobal:
		// Already an absolute address; nothing further to add.
	case LocationParam:
		e.commentf("param referenced")
		e.emitf("R[%d] = R[FP] + 1 + R[%d];", addrReg, addrReg)
	default:
		e.commentf("local var referenced")
		e.emitf("R[%d] = R[FP] - R[%d];", addrReg, addrReg)
	}

	return addrReg
}

// globalAddress translates a compile-time global offset (assigned
// sequentially from 0) into the actual downward-growing address at the top
// of memory (spec.md §4.4 frame model, invariant I5).
func (e *Emitter) globalAddress(offset int) int {
	return mmSize - 1 - offset
}

// LoadName emits the address computation for id and loads MM[address] into
// a fresh register, returning it.
func (e *Emitter) LoadName(id *Identifier, location IdentifierLocation, idxReg int) int {
	addrReg := e.NameAddress(id, location, idxReg)
	valReg := e.MintRegister()
	e.emitf("R[%d] = MM[R[%d]];", valReg, addrReg)
	return valReg
}

// StoreName emits the address computation for id and stores R[exprReg] at
// MM[address].
func (e *Emitter) StoreName(id *Identifier, location IdentifierLocation, idxReg, exprReg int) {
	addrReg := e.NameAddress(id, location, idxReg)
	e.emitf("MM[R[%d]] = R[%d];", addrReg, exprReg)
}

// LoadAt loads MM[R[addrReg]] into a fresh register, given an address
// already computed by a prior NameAddress call.
func (e *Emitter) LoadAt(addrReg int) int {
	valReg := e.MintRegister()
	e.emitf("R[%d] = MM[R[%d]];", valReg, addrReg)
	return valReg
}

// Store writes R[exprReg] to MM[R[addrReg]], given an address already
// computed by a prior NameAddress call.
func (e *Emitter) Store(addrReg, exprReg int) {
	e.emitf("MM[R[%d]] = R[%d];", addrReg, exprReg)
}

// LocalFrameSize returns the number of cells a procedure or program body's
// locals occupy, for its BodyBegin allocation.
func (e *Emitter) LocalFrameSize() int {
	return e.localPtr - 1
}

// IntegerLiteral materializes an integer constant into a fresh register.
func (e *Emitter) IntegerLiteral(value string, negate bool) int {
	reg := e.MintRegister()
	if negate {
		e.emitf("R[%d] = -%s;", reg, value)
	} else {
		e.emitf("R[%d] = %s;", reg, value)
	}
	return reg
}

// FloatLiteral materializes a float constant via the float-scratch
// round-trip, preserving the bit pattern across the int-typed register
// file.
func (e *Emitter) FloatLiteral(value string, negate bool) int {
	reg := e.MintRegister()
	if negate {
		e.emitf("R_FLOAT_1 = -%s;", value)
	} else {
		e.emitf("R_FLOAT_1 = %s;", value)
	}
	e.emitf("memcpy(&R[%d], &R_FLOAT_1, sizeof(float));", reg)
	return reg
}

// StringLiteral materializes a string constant as a pointer into a fresh
// register. String literals are emitted as embedded C string constants
// rather than copied through the runtime heap at compile time (spec.md
// SPEC_FULL.md, Supplemented Features §5).
func (e *Emitter) StringLiteral(value string) int {
	reg := e.MintRegister()
	e.emitf("R[%d] = (int)%q;", reg, value)
	return reg
}

// BoolLiteral materializes `true`/`false` as 1/0 in a fresh register.
func (e *Emitter) BoolLiteral(value bool) int {
	reg := e.MintRegister()
	if value {
		e.emitf("R[%d] = 1;", reg)
	} else {
		e.emitf("R[%d] = 0;", reg)
	}
	return reg
}

// Negate emits a bitwise complement of reg in place, used for the `not`
// unary operator (spec.md §4.3).
func (e *Emitter) Negate(reg int) {
	e.emitf("R[%d] = ~R[%d];", reg, reg)
}

// Operation emits the arithmetic/logical/relational op over two operands.
// If either operand is a float, both are widened into float scratch
// registers and the result is written back through the same round-trip;
// otherwise a direct integer 3-address op is emitted (spec.md §4.4).
func (e *Emitter) Operation(reg1 int, t1 Type, reg2 int, t2 Type, op string) int {
	result := e.MintRegister()

	if t1 != TypeFloat && t2 != TypeFloat {
		e.emitf("R[%d] = R[%d] %s R[%d];", result, reg1, op, reg2)
		return result
	}

	if t1 == TypeFloat {
		e.emitf("memcpy(&R_FLOAT_1, &R[%d], sizeof(float));", reg1)
	} else {
		e.emitf("R_FLOAT_1 = R[%d];", reg1)
	}

	if t2 == TypeFloat {
		e.emitf("memcpy(&R_FLOAT_2, &R[%d], sizeof(float));", reg2)
	} else {
		e.emitf("R_FLOAT_2 = R[%d];", reg2)
	}

	e.emitf("R_FLOAT_1 = R_FLOAT_1 %s R_FLOAT_2;", op)
	e.emitf("memcpy(&R[%d], &R_FLOAT_1, sizeof(float));", result)

	return result
}

// IfBranch emits the conditional branch for an `if` statement: jump to the
// else label when the condition register is zero.
func (e *Emitter) IfBranch(condReg, labelID int) {
	e.emitf("if (!R[%d]) goto %s;", condReg, elseLabel(labelID))
	e.TabPush()
}

// IfThenEnd closes the then-branch, jumping past the else branch.
func (e *Emitter) IfThenEnd(labelID int) {
	e.emitf("goto %s;", endifLabel(labelID))
	e.TabPop()
	e.emit(elseLabel(labelID) + ":")
	e.TabPush()
}

// IfEnd closes the else-branch and emits the join label.
func (e *Emitter) IfEnd(labelID int) {
	e.TabPop()
	e.emit(endifLabel(labelID) + ":")
}

// LoopHeader emits the loop condition label, called once after the
// initializer assignment runs.
func (e *Emitter) LoopHeader(labelID int) {
	e.emit(loopLabel(labelID) + ":")
	e.TabPush()
}

// LoopBranch emits the conditional exit of a `for` loop.
func (e *Emitter) LoopBranch(condReg, labelID int) {
	e.emitf("if (!R[%d]) goto %s;", condReg, endloopLabel(labelID))
}

// LoopEnd emits the back-edge jump and the loop's exit label.
func (e *Emitter) LoopEnd(labelID int) {
	e.emitf("goto %s;", loopLabel(labelID))
	e.TabPop()
	e.emit(endloopLabel(labelID) + ":")
}

// MintRegister returns a new, previously unused register number.
func (e *Emitter) MintRegister() int {
	e.reg++
	return e.reg
}

// CurrentRegister returns the most recently minted register without
// allocating a new one — used to reference "the register holding the
// result just computed" (spec.md §4.4, mirroring get_reg(inc=False)).
func (e *Emitter) CurrentRegister() int {
	return e.reg
}

// MintLabel returns a new, previously unused label id.
func (e *Emitter) MintLabel() int {
	e.labelID++
	return e.labelID
}

// MintCallID returns a new, previously unused call-site disambiguator.
func (e *Emitter) MintCallID() int {
	e.callID++
	return e.callID
}

// AllocGlobal assigns the next global-scope memory slot for an identifier
// of the given element count, and returns its (pre-translation) offset.
func (e *Emitter) AllocGlobal(elementCount int) int {
	offset := e.globalOffset
	e.globalOffset += elementCount
	return offset
}

// AllocLocal assigns the next local-scope frame slot for an identifier of
// the given element count.
func (e *Emitter) AllocLocal(elementCount int) int {
	ptr := e.localPtr
	e.localPtr += elementCount
	return ptr
}

// AllocParam assigns the next parameter-scope frame slot. Every parameter
// occupies exactly one cell regardless of declared array size (spec.md
// SPEC_FULL.md Open Question #2: arrays are passed by reference).
func (e *Emitter) AllocParam() int {
	ptr := e.paramPtr
	e.paramPtr++
	return ptr
}

// ResetLocalPtr restarts local-variable offset counting, called at the
// start of every procedure and program body.
func (e *Emitter) ResetLocalPtr() {
	e.localPtr = 1
}

// ResetParamPtr restarts parameter offset counting, called at the start of
// every procedure header.
func (e *Emitter) ResetParamPtr() {
	e.paramPtr = 1
}

// TabPush increases the indentation depth of subsequently generated lines.
func (e *Emitter) TabPush() {
	e.tabCount++
}

// TabPop decreases the indentation depth, floored at zero.
func (e *Emitter) TabPop() {
	if e.tabCount > 0 {
		e.tabCount--
	}
}

// commentf appends a comment line, but only when the emitter was built with
// debug enabled (spec.md §6 -d/--debug).
func (e *Emitter) commentf(format string, args ...interface{}) {
	if !e.debug {
		return
	}
	e.emit("// " + fmt.Sprintf(format, args...))
}

// RawText appends raw text (e.g. a runtime procedure body) without any
// per-line tabbing applied.
func (e *Emitter) RawText(text string) {
	e.emitRaw(text)
}

func (e *Emitter) emit(line string) {
	e.buf.WriteString(strings.Repeat("    ", e.tabCount))
	e.buf.WriteString(line)
	e.buf.WriteByte('\n')
}

func (e *Emitter) emitf(format string, args ...interface{}) {
	e.emit(fmt.Sprintf(format, args...))
}

func (e *Emitter) emitRaw(text string) {
	e.buf.WriteString(text)
}

// Commit writes the accumulated buffer to path. It is the only place the
// Emitter touches the filesystem; on any recorded compilation error the
// caller must skip this call entirely so no destination file is created
// (spec.md §5, §7).
func (e *Emitter) Commit(path string) error {
	return os.WriteFile(path, []byte(e.buf.String()), 0o644)
}

// Text returns the accumulated buffer without writing it to disk, primarily
// for tests.
func (e *Emitter) Text() string {
	return e.buf.String()
}

func entryLabel(name string, labelID int) string {
	return fmt.Sprintf("%s_%d", sanitizeLabel(name), labelID)
}

func beginLabel(name string, labelID int) string {
	return entryLabel(name, labelID) + "_begin"
}

func exitLabel(name string, labelID int) string {
	return entryLabel(name, labelID) + "_end"
}

func callReturnLabel(name string, labelID, callID int) string {
	return entryLabel(name, labelID) + "_" + strconv.Itoa(callID)
}

func elseLabel(labelID int) string {
	return "else_" + strconv.Itoa(labelID)
}

func endifLabel(labelID int) string {
	return "endif_" + strconv.Itoa(labelID)
}

func loopLabel(labelID int) string {
	return "loop_" + strconv.Itoa(labelID)
}

func endloopLabel(labelID int) string {
	return "endloop_" + strconv.Itoa(labelID)
}

func sanitizeLabel(name string) string {
	return strings.Map(func(r rune) rune {
		if isIdentPart(r) {
			return r
		}
		return '_'
	}, name)
}
