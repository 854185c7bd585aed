package services

import (
	"math"
	"time"

	"github.com/hidrata/quest-backend/internal/dto"
)

// questTolerance absorbs float error when a target is split and summed back.
const questTolerance = 1e-6

type questKind int

const (
	questMission questKind = iota
	questExercise
	questTotal
)

type questDef struct {
	id     string
	title  string
	period Period
	kind   questKind
	// slot is the position of a mission within the day.
	slot int
	// days scales the daily target for total quests.
	days   int
	reward int
}

var questCatalog = []questDef{
	{id: "d1", title: "Manhã", period: PeriodDay, kind: questMission, slot: 0, reward: 10},
	{id: "d2", title: "Tarde", period: PeriodDay, kind: questMission, slot: 1, reward: 15},
	{id: "d3", title: "Noite", period: PeriodDay, kind: questMission, slot: 2, reward: 20},
	{id: "d_extra", title: "Hidratação no Exercício", period: PeriodDay, kind: questExercise, reward: 25},
	{id: "w1", title: "Semana Hídrica", period: PeriodWeek, kind: questTotal, days: 7, reward: 50},
	{id: "m1", title: "Maratona da Hidratação", period: PeriodMonth, kind: questTotal, days: 30, reward: 200},
}

var questTypes = map[Period]string{
	PeriodDay:   "daily",
	PeriodWeek:  "weekly",
	PeriodMonth: "monthly",
}

// questPeriods lists the windows quest progress is measured over.
var questPeriods = []Period{PeriodDay, PeriodWeek, PeriodMonth}

type questWindow struct {
	from, to time.Time
}

// evaluateQuests measures every quest of the catalog against the amounts
// drunk per period. The three daily missions fill in order from the day's
// total; whatever exceeds the daily target counts toward the exercise
// quest, which is left out when the profile has no exercise extra.
func evaluateQuests(targets *dto.HydrationTargets, totals map[Period]float64, windows map[Period]questWindow) []dto.QuestProgress {
	daily := targets.DailyTargetML
	perMission := daily / DefaultMissions
	drankToday := totals[PeriodDay]

	quests := make([]dto.QuestProgress, 0, len(questCatalog))
	for _, def := range questCatalog {
		var target, progress float64
		switch def.kind {
		case questMission:
			target = perMission
			progress = clamp(math.Min(drankToday, daily)-perMission*float64(def.slot), 0, perMission)
		case questExercise:
			if targets.ExerciseExtraML <= 0 {
				continue
			}
			target = targets.ExerciseExtraML
			progress = clamp(drankToday-daily, 0, target)
		case questTotal:
			target = daily * float64(def.days)
			progress = clamp(totals[def.period], 0, target)
		}

		completed := target > 0 && progress+questTolerance >= target
		if completed {
			progress = target
		}

		w := windows[def.period]
		quests = append(quests, dto.QuestProgress{
			ID:          def.id,
			Title:       def.title,
			Type:        questTypes[def.period],
			TargetML:    target,
			ProgressML:  progress,
			Reward:      def.reward,
			Completed:   completed,
			PeriodStart: w.from,
			PeriodEnd:   w.to,
		})
	}
	return quests
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
