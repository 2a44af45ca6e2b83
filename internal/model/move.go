package model

import (
	"encoding/json"
	"fmt"
)

type Outcome int

const (
	Rejected Outcome = iota
	Accepted
)

func (o Outcome) String() string {
	if o == Accepted {
		return "accepted"
	}
	return "rejected"
}

func (o Outcome) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

// Reason classifies why a proposal was rejected. ReasonNone accompanies Accepted.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonOutOfBounds
	ReasonUnknownPiece
	ReasonWrongTurn
	ReasonGeometryInvalid
	ReasonPathBlocked
	ReasonOwnPieceAtDestination
)

var reasonNames = map[Reason]string{
	ReasonNone:                  "",
	ReasonOutOfBounds:           "outOfBounds",
	ReasonUnknownPiece:          "unknownPiece",
	ReasonWrongTurn:             "wrongTurn",
	ReasonGeometryInvalid:       "geometryInvalid",
	ReasonPathBlocked:           "pathBlocked",
	ReasonOwnPieceAtDestination: "ownPieceAtDestination",
}

func (r Reason) String() string {
	if name, ok := reasonNames[r]; ok {
		return name
	}
	return fmt.Sprintf("reason(%d)", int(r))
}

func (r Reason) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// MoveDiff describes a committed move.
type MoveDiff struct {
	Piece    PieceView  `json:"piece"`
	From     Square     `json:"from"`
	To       Square     `json:"to"`
	Captured *PieceView `json:"captured"`
	Notation string     `json:"notation"`
}

type Verdict struct {
	Outcome Outcome   `json:"outcome"`
	Reason  Reason    `json:"reason,omitempty"`
	Diff    *MoveDiff `json:"diff,omitempty"`
}

func (v Verdict) Accepted() bool {
	return v.Outcome == Accepted
}

func rejected(r Reason) Verdict {
	return Verdict{Outcome: Rejected, Reason: r}
}

type Feedback string

const (
	FeedbackMove     Feedback = "move"
	FeedbackCapture  Feedback = "capture"
	FeedbackRejected Feedback = "rejected"
)

// Feedback tells the presentation layer which cue fits the verdict.
func (v Verdict) Feedback() Feedback {
	switch {
	case !v.Accepted():
		return FeedbackRejected
	case v.Diff != nil && v.Diff.Captured != nil:
		return FeedbackCapture
	default:
		return FeedbackMove
	}
}

func notation(p PieceView, to Square, capture bool) string {
	x := ""
	if capture {
		x = "x"
	}
	return fmt.Sprintf("%s%s%s%s", p.Type.getPieceNotation(), p.Square, x, to)
}
