package kiosk

import (
	"fmt"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/attendance"
)

var inMessages = []string{
	"Good morning! Have a productive day.",
	"Welcome back, the team is glad you are here.",
	"A new day, a new chance to do great work.",
	"Thanks for being on time. Let's make today count.",
	"Coffee first, then conquer the day.",
}

var outMessages = []string{
	"Great work today. Rest well!",
	"Thanks for your effort. See you tomorrow.",
	"Another day done. Enjoy your evening.",
	"Drive safely and take care.",
	"You earned your rest. Good night!",
}

// MessagePicker chooses an index in [0, n).
type MessagePicker func(n int) int

func greeting(markType attendance.Type, pick MessagePicker) string {
	pool := inMessages
	if markType != attendance.TypeIn {
		pool = outMessages
	}
	return pool[pick(len(pool))]
}

func birthdayGreeting(name string) string {
	return fmt.Sprintf("Happy birthday, %s! The whole team wishes you a wonderful day.", name)
}
