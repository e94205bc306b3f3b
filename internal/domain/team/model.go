package team

import "fmt"

// Team is a competitor inside one competition. The engine only cares about
// identity and home/away role; display fields are carried for the API layer.
type Team struct {
	ID            string
	CompetitionID string
	Name          string
	Short         string
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.CompetitionID == "" {
		return fmt.Errorf("team competition id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}
