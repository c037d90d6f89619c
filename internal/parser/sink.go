package parser

import (
	"shaderlens/internal/syntax"
	"shaderlens/internal/token"
)

// sink replays events over the token stream and builds the green tree.
// Trivia is attached as soon as a node is open; anything left when the
// root closes stays inside the root.
func sink(tokens []token.Token, events []Event, cache *syntax.NodeCache) (*syntax.GreenNode, []*ParseError) {
	b := syntax.NewBuilder(cache)
	var errs []*ParseError
	cursor, depth := 0, 0

	emit := func() {
		tok := tokens[cursor]
		b.Token(tok.Kind, tok.Text)
		cursor++
	}
	eatTrivia := func() {
		if depth == 0 {
			return
		}
		for cursor < len(tokens) && tokens[cursor].Kind.IsTrivia() {
			emit()
		}
	}

	var kinds []token.Kind
	for i := range events {
		ev := events[i]
		events[i] = Event{Kind: EvPlaceholder}

		switch ev.Kind {
		case EvStart:
			kinds = append(kinds[:0], ev.Node)
			j, fp := i, ev.ForwardParent
			for fp != 0 {
				j += int(fp)
				if j >= len(events) {
					break
				}
				parent := events[j]
				events[j] = Event{Kind: EvPlaceholder}
				if parent.Kind == EvStart {
					kinds = append(kinds, parent.Node)
				}
				fp = parent.ForwardParent
			}
			for k := len(kinds) - 1; k >= 0; k-- {
				b.StartNode(kinds[k])
				depth++
			}
		case EvToken:
			emit()
		case EvFinish:
			if depth == 1 {
				for cursor < len(tokens) {
					emit()
				}
			}
			b.FinishNode()
			depth--
		case EvError:
			errs = append(errs, ev.Err)
		}
		eatTrivia()
	}
	return b.Finish(), errs
}
