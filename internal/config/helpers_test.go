package config

import "github.com/dayti/agribot/internal/domain"

func positionAt(x, y int) domain.Position {
	return domain.Position{X: x, Y: y}
}
