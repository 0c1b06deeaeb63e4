package models

import "encoding/json"

// Exercise is a catalog entry. The catalog payload is passed through as-is,
// Raw keeps the original object so no field is lost on re-encoding.
type Exercise struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	BodyPart  string `json:"bodyPart"`
	Target    string `json:"target"`
	Equipment string `json:"equipment"`
	GifURL    string `json:"gifUrl"`

	Raw json.RawMessage `json:"-"`
}

func (e *Exercise) UnmarshalJSON(data []byte) error {
	type alias Exercise
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*e = Exercise(a)
	e.Raw = append(json.RawMessage(nil), data...)
	return nil
}

func (e Exercise) MarshalJSON() ([]byte, error) {
	if len(e.Raw) > 0 {
		return e.Raw, nil
	}
	type alias Exercise
	return json.Marshal(alias(e))
}
