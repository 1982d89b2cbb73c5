package types

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"
)

// Answers maps question ids to raw submitted values. A value is either a
// string or an ordered []string for multi-select questions.
type Answers map[string]interface{}

func (a *Answers) UnmarshalJSON(data []byte) error {
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Answers, len(raw))
	for id, v := range raw {
		var list []string
		if err := json.Unmarshal(v, &list); err == nil {
			out[id] = list
			continue
		}
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return fmt.Errorf("answer %s: %w", id, err)
		}
		out[id] = s
	}
	*a = out
	return nil
}

// Values returns the answer for id as a list. Single answers wrap into a
// one-element list; multi-select answers are returned as stored.
func (a Answers) Values(id string) ([]string, bool) {
	v, ok := a[id]
	if !ok {
		return nil, false
	}
	switch answer := v.(type) {
	case string:
		return []string{answer}, true
	case []string:
		return answer, true
	case []interface{}:
		list := make([]string, 0, len(answer))
		for _, item := range answer {
			list = append(list, fmt.Sprintf("%v", item))
		}
		return list, true
	default:
		return []string{fmt.Sprintf("%v", v)}, true
	}
}

// String returns the answer for id as a single string, multi-select values
// joined by ", ".
func (a Answers) String(id string) (string, bool) {
	values, ok := a.Values(id)
	if !ok {
		return "", false
	}
	return strings.Join(values, ", "), true
}

// Normalize rewrites decoded list values ([]interface{} from JSON, bson
// primitive.A from the Mongo driver) into []string so stored and in-memory
// states compare equal.
func (a Answers) Normalize() {
	for id, v := range a {
		switch v.(type) {
		case string, []string:
			continue
		}
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Slice {
			continue
		}
		out := make([]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out = append(out, fmt.Sprintf("%v", rv.Index(i).Interface()))
		}
		a[id] = out
	}
}

// FormState is the durable per-user snapshot of progress through the
// registration form. The engine exclusively owns mutation; stores persist the
// whole record on every write.
type FormState struct {
	UserID            int64     `bson:"userID" json:"user_id"`
	EventID           string    `bson:"eventID,omitempty" json:"event_id,omitempty"`
	RegistrationID    string    `bson:"registrationID,omitempty" json:"registration_id,omitempty"`
	Language          string    `bson:"language" json:"language"`
	CurrentQuestionID string    `bson:"currentQuestionID" json:"current_question_id"`
	Answers           Answers   `bson:"answers" json:"answers"`
	Completed         bool      `bson:"completed" json:"completed"`
	CreatedAt         time.Time `bson:"createdAt" json:"created_at"`
	UpdatedAt         time.Time `bson:"updatedAt" json:"updated_at"`
}

func NewFormState(userID int64, language string) *FormState {
	if language == "" {
		language = DEFAULT_LANGUAGE
	}
	now := time.Now()
	return &FormState{
		UserID:    userID,
		Language:  language,
		Answers:   Answers{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Clone returns a deep copy; the engine mutates a copy and only swaps it in
// after the store write succeeded.
func (fs *FormState) Clone() *FormState {
	c := *fs
	c.Answers = make(Answers, len(fs.Answers))
	for id, v := range fs.Answers {
		if list, ok := v.([]string); ok {
			c.Answers[id] = append([]string(nil), list...)
			continue
		}
		c.Answers[id] = v
	}
	return &c
}

// Facts are the externally sourced inputs to skip evaluation, resolved once
// per operation so evaluation itself stays pure.
type Facts struct {
	UserExists bool
	EventType  string
}
