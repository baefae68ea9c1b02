package game

import "fmt"

// View is the subscriber-safe projection of a session. It never carries a
// token, and during answering it carries neither the correct flag nor any
// player's selection.
type View interface {
	Phase() Phase
}

type PublicPlayer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

type AnsweringPlayer struct {
	PublicPlayer
	HasAnswered bool `json:"hasAnswered"`
}

type PublicOption struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type ResolvedOption struct {
	ID                 string   `json:"id"`
	Text               string   `json:"text"`
	Correct            bool     `json:"correct"`
	SelectedByPlayerID []string `json:"selectedByPlayerID"`
}

type LobbyView struct {
	ID                     string                  `json:"id"`
	State                  Phase                   `json:"state"`
	Players                map[string]PublicPlayer `json:"players"`
	Rounds                 int                     `json:"rounds"`
	TimeForQuestionSeconds int                     `json:"timeForQuestionSeconds"`
}

func (LobbyView) Phase() Phase { return PhaseLobby }

type WaitingForAnswersView struct {
	ID            string                     `json:"id"`
	State         Phase                      `json:"state"`
	Players       map[string]AnsweringPlayer `json:"players"`
	Question      string                     `json:"question"`
	Options       []PublicOption             `json:"options"`
	CurrentRound  int                        `json:"currentRound"`
	Rounds        int                        `json:"rounds"`
	StartedAtUnix int64                      `json:"startedAtUnix"`
	DeadlineUnix  int64                      `json:"deadlineUnix"`
}

func (WaitingForAnswersView) Phase() Phase { return PhaseWaitingForAnswers }

type PostAnswerView struct {
	ID           string                  `json:"id"`
	State        Phase                   `json:"state"`
	Players      map[string]PublicPlayer `json:"players"`
	Question     string                  `json:"question"`
	Options      []ResolvedOption        `json:"options"`
	CurrentRound int                     `json:"currentRound"`
	Rounds       int                     `json:"rounds"`
}

func (PostAnswerView) Phase() Phase { return PhasePostAnswer }

// DestroyedView is the terminal event sent once to every subscriber.
type DestroyedView struct {
	ID    string `json:"id"`
	State Phase  `json:"state"`
}

func (DestroyedView) Phase() Phase { return PhaseDestroyed }

func publicPlayer(p Player) PublicPlayer {
	return PublicPlayer{ID: p.ID, Name: p.Name, Score: p.Score}
}

// project maps the internal state to its view. It does not retain or
// mutate any of its arguments.
func project(id string, players []Player, st state) View {
	switch st := st.(type) {
	case lobbyState:
		view := LobbyView{
			ID:                     id,
			State:                  PhaseLobby,
			Players:                make(map[string]PublicPlayer, len(players)),
			Rounds:                 st.rounds,
			TimeForQuestionSeconds: st.timeForQuestionSeconds,
		}
		for _, p := range players {
			view.Players[p.ID] = publicPlayer(p)
		}
		return view
	case *waitingState:
		view := WaitingForAnswersView{
			ID:            id,
			State:         PhaseWaitingForAnswers,
			Players:       make(map[string]AnsweringPlayer, len(players)),
			Question:      st.question.text,
			Options:       make([]PublicOption, len(st.options)),
			CurrentRound:  st.currentRound,
			Rounds:        st.rounds,
			StartedAtUnix: st.startedAtUnix,
			DeadlineUnix:  st.deadlineUnix,
		}
		for _, p := range players {
			view.Players[p.ID] = AnsweringPlayer{
				PublicPlayer: publicPlayer(p),
				HasAnswered:  st.answers[p.ID] != "",
			}
		}
		for i, o := range st.options {
			view.Options[i] = PublicOption{ID: o.id, Text: o.text}
		}
		return view
	case *postAnswerState:
		view := PostAnswerView{
			ID:           id,
			State:        PhasePostAnswer,
			Players:      make(map[string]PublicPlayer, len(players)),
			Question:     st.question.text,
			Options:      make([]ResolvedOption, len(st.options)),
			CurrentRound: st.currentRound,
			Rounds:       st.rounds,
		}
		for _, p := range players {
			view.Players[p.ID] = publicPlayer(p)
		}
		for i, o := range st.options {
			selected := make([]string, len(o.selectedBy))
			copy(selected, o.selectedBy)
			view.Options[i] = ResolvedOption{
				ID:                 o.id,
				Text:               o.text,
				Correct:            o.correct,
				SelectedByPlayerID: selected,
			}
		}
		return view
	default:
		panic(fmt.Sprintf("game: unknown state %T", st))
	}
}
