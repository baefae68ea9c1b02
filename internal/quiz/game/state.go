package game

type Phase string

const (
	PhaseLobby             Phase = "lobby"
	PhaseWaitingForAnswers Phase = "waitingForAnswers"
	PhasePostAnswer        Phase = "postAnswer"
	PhaseDestroyed         Phase = "destroyed"
)

// state is the internal, secret-bearing session state. Exactly one of the
// variants below is active; consumers switch on the concrete type.
type state interface {
	phase() Phase
}

type roundQuestion struct {
	id   string
	text string
}

type roundOption struct {
	id      string
	text    string
	correct bool
}

type lobbyState struct {
	rounds                 int
	timeForQuestionSeconds int
}

func (lobbyState) phase() Phase { return PhaseLobby }

type waitingState struct {
	question roundQuestion
	options  []roundOption
	// player id -> selected option id
	answers       map[string]string
	currentRound  int
	rounds        int
	startedAtUnix int64
	deadlineUnix  int64
}

func (*waitingState) phase() Phase { return PhaseWaitingForAnswers }

func (s *waitingState) option(id string) (roundOption, bool) {
	for _, o := range s.options {
		if o.id == id {
			return o, true
		}
	}
	return roundOption{}, false
}

func (s *waitingState) correctID() (string, bool) {
	for _, o := range s.options {
		if o.correct {
			return o.id, true
		}
	}
	return "", false
}

type resolvedOption struct {
	roundOption
	selectedBy []string
}

type postAnswerState struct {
	question     roundQuestion
	options      []resolvedOption
	currentRound int
	rounds       int
}

func (*postAnswerState) phase() Phase { return PhasePostAnswer }
