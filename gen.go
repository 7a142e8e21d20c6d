// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package aseq

import (
	"context"

	"code.hybscloud.com/kont"
)

// Yield is the effect operation for producing a value from a generator
// program. Perform(Yield[T]{Value: v}) suspends the program until the
// consumer asks for the next value.
type Yield[T any] struct {
	kont.Phantom[struct{}]
	Value T
}

// YieldThen yields v and then continues with next.
// Fuses Perform(Yield[T]{Value: v}) + Then.
func YieldThen[T, B any](v T, next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(Yield[T]{Value: v}), next)
}

// Done completes a generator program.
func Done() kont.Eff[struct{}] {
	return kont.Pure(struct{}{})
}

// ExprDone completes an Expr-world generator program.
func ExprDone() kont.Expr[struct{}] {
	return kont.ExprReturn(struct{}{})
}

// exprReturnFrame is pre-allocated to eliminate the heap escape of boxing
// the empty frame into kont.Frame during Expr-world construction.
var exprReturnFrame kont.Frame = kont.ReturnFrame{}

// identityResume is the identity resume function for EffectFrame
// construction. Named function produces a static function value,
// consistent with kont convention.
func identityResume(v kont.Erased) kont.Erased { return v }

// ExprYieldThen yields v and then continues with next.
// Fuses ExprPerform(Yield[T]{Value: v}) + ExprThen.
func ExprYieldThen[T, B any](v T, next kont.Expr[B]) kont.Expr[B] {
	tf := kont.AcquireThenFrame()
	tf.Second = kont.Expr[kont.Erased]{Value: kont.Erased(next.Value), Frame: next.Frame}
	tf.Next = exprReturnFrame
	ef := kont.AcquireEffectFrame()
	ef.Operation = Yield[T]{Value: v}
	ef.Resume = identityResume
	ef.Next = tf
	return kont.ExprSuspend[B](ef)
}

// Loop builds a recursive generator program.
// step returns Left(nextState) to continue or Right(result) to finish.
func Loop[S, A any](initial S, step func(S) kont.Eff[kont.Either[S, A]]) kont.Eff[A] {
	return kont.Bind(step(initial), func(e kont.Either[S, A]) kont.Eff[A] {
		if left, ok := e.GetLeft(); ok {
			return Loop(left, step)
		}
		right, _ := e.GetRight()
		return kont.Pure(right)
	})
}

// genSeq steps a kont program one Yield effect per advance, the way an
// external runtime steps a suspended protocol. Each session evaluates a
// fresh program, so the Seq is re-enumerable.
type genSeq[T any] struct {
	core[T]
	program func() kont.Expr[struct{}]

	started bool
	susp    *kont.Suspension[struct{}]
}

// Generate builds a [Seq] from a Cont-world generator program.
// The program performs [Yield] effects; any other effect is a misuse and
// panics at the advance that encounters it.
func Generate[T any](program func() kont.Eff[struct{}]) Seq[T] {
	if program == nil {
		panic("aseq: Generate: nil program")
	}
	return GenerateExpr[T](func() kont.Expr[struct{}] {
		return kont.Reify(program())
	})
}

// GenerateExpr builds a [Seq] from an Expr-world generator program.
func GenerateExpr[T any](program func() kont.Expr[struct{}]) Seq[T] {
	if program == nil {
		panic("aseq: Generate: nil program")
	}
	g := &genSeq[T]{program: program}
	g.init(g)
	return g
}

func (g *genSeq[T]) clone() *core[T] {
	n := &genSeq[T]{program: g.program}
	n.init(n)
	return &n.core
}

func (g *genSeq[T]) setup(context.Context) error { return nil }

func (g *genSeq[T]) step() (bool, error) {
	if !g.started {
		g.started = true
		_, g.susp = kont.StepExpr(g.program())
	} else {
		if g.susp == nil {
			return false, nil
		}
		_, g.susp = g.susp.Resume(struct{}{})
	}
	if g.susp == nil {
		return false, nil
	}
	op, ok := g.susp.Op().(Yield[T])
	if !ok {
		panic("aseq: unhandled effect in generator")
	}
	g.current = op.Value
	return true, nil
}

func (g *genSeq[T]) release() error {
	if g.susp != nil {
		g.susp.Discard()
		g.susp = nil
	}
	return nil
}
