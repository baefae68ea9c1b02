package main

import (
	"fmt"

	"github.com/bloops-games/quiz/internal/database/question/model"
	"github.com/bloops-games/quiz/internal/strpool"
	"github.com/enescakir/emoji"
)

func renderQuestion(q model.Question) string {
	buf := strpool.Get()
	defer strpool.Put(buf)

	_, _ = fmt.Fprintf(buf, "%s %s\n", emoji.CardIndex.String(), q.Text)
	_, _ = fmt.Fprintf(buf, "   id: %s\n", q.ID)
	for _, o := range q.Options {
		mark := emoji.CrossMark.String()
		if o.Correct {
			mark = emoji.CheckMarkButton.String()
		}
		_, _ = fmt.Fprintf(buf, "   %s %s\n", mark, o.Text)
	}

	return buf.String()
}
