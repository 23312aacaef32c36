package handlers

import (
	"github.com/gorilla/schema"

	"github.com/vancomm/minefield/internal/session"
)

var decoder = newDecoder()

func newDecoder() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return dec
}

type HighscoresDTO struct {
	Difficulty string `schema:"difficulty,required"`
	Limit      int    `schema:"limit"`
}

func ParseHighscoresDTO(src map[string][]string) (HighscoresDTO, error) {
	var dto HighscoresDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

type PlayDTO struct {
	Difficulty string `schema:"difficulty"`
}

func ParsePlayDTO(src map[string][]string) (PlayDTO, error) {
	var dto PlayDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

// DifficultyOr parses s, or returns fallback when s is empty.
func DifficultyOr(s string, fallback session.Difficulty) (session.Difficulty, error) {
	if s == "" {
		return fallback, nil
	}
	return session.ParseDifficulty(s)
}

type DifficultyDTO struct {
	Name session.Difficulty `json:"name"`
	session.Params
}

func NewDifficultiesDTO() []DifficultyDTO {
	dtos := make([]DifficultyDTO, 0, len(session.Difficulties))
	for _, d := range session.Difficulties {
		p, _ := d.Params()
		dtos = append(dtos, DifficultyDTO{Name: d, Params: p})
	}
	return dtos
}
