// Package test holds small Flint source fixtures shared by pkg's test
// files, mirroring the concrete scenarios in spec.md §8.
package test

// EmptyProgram is the minimal valid program (spec.md §8, E1).
const EmptyProgram = `program empty is begin end program`

// GlobalShadowProgram declares a global and a same-named local, then
// assigns through the local (spec.md §8, E2).
const GlobalShadowProgram = `program p is
  global integer x;
  integer x;
begin
  x := 1;
end program`

// TypeMismatchProgram assigns a float to an integer destination (spec.md
// §8, E3).
const TypeMismatchProgram = `program p is
  integer a;
  float b;
begin
  a := b;
end program`

// OutParamByExpressionProgram calls a procedure with an out parameter using
// a general expression instead of a name (spec.md §8, E4).
const OutParamByExpressionProgram = `program p is
  procedure q(integer n out)
  begin
    return;
  end procedure;
begin
  q(1 + 2);
end program`

// IfElseProgram exercises both branches of a conditional (spec.md §8, E5).
const IfElseProgram = `program p is
  integer x;
begin
  if (true) then x := 1; else x := 2; end if;
end program`

// RepeatedCallProgram calls the same procedure twice from the same scope
// (spec.md §8, E6).
const RepeatedCallProgram = `program p is
  integer a;
  integer b;
  procedure q(integer n in)
  begin
    return;
  end procedure;
begin
  q(a);
  q(b);
end program`

// ArrayProgram declares and indexes an array both for read and write.
const ArrayProgram = `program p is
  integer items[4];
begin
  items[0] := 1;
  items[1] := items[0] + 1;
end program`

// UnclosedStringProgram has a string literal missing its closing quote; the
// statement's ';' sits on the next line, since the literal runs to the end of
// its own line.
const UnclosedStringProgram = "program p is\n  string s;\nbegin\n  s := \"oops\n  ;\nend program"
