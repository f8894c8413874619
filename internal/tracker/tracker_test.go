package tracker

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/girassol/internal/calendar"
	"github.com/julianstephens/girassol/internal/habits"
	"github.com/julianstephens/girassol/internal/kvstore"
	"github.com/julianstephens/girassol/internal/models"
	"github.com/julianstephens/girassol/internal/schema"
	"github.com/julianstephens/girassol/internal/storage"
)

var testNow = time.Date(2025, time.June, 15, 9, 30, 0, 0, time.UTC)

func newService(t *testing.T) *Service {
	t.Helper()
	store := kvstore.New(storage.NewMemoryStore())
	svc := New(store, calendar.New(time.UTC, func() time.Time { return testNow }))
	n := 0
	svc.SetIDFunc(func() string {
		n++
		return fmt.Sprintf("id-%02d", n)
	})
	return svc
}

func ago(k int) string { return calendar.DaysAgo(testNow, k) }

func TestResolve(t *testing.T) {
	items := []models.Habit{
		{ID: "abc-1", Title: "Read"},
		{ID: "abd-2", Title: "Run"},
		{ID: "xyz-3", Title: "read"},
	}

	tests := []struct {
		name    string
		ref     string
		want    int
		wantErr error
	}{
		{name: "exact id", ref: "abd-2", want: 1},
		{name: "title", ref: "RUN", want: 1},
		{name: "ambiguous title", ref: "read", wantErr: ErrAmbiguous},
		{name: "unique prefix", ref: "xy", want: 2},
		{name: "ambiguous prefix", ref: "ab", wantErr: ErrAmbiguous},
		{name: "missing", ref: "swim", wantErr: ErrNotFound},
		{name: "blank", ref: "  ", wantErr: ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolve(items, tt.ref, habitID, habitTitle)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHabitLifecycle(t *testing.T) {
	svc := newService(t)

	_, err := svc.AddHabit("   ")
	assert.ErrorIs(t, err, ErrEmptyText)

	h, err := svc.AddHabit(" Meditate ")
	require.NoError(t, err)
	assert.Equal(t, "Meditate", h.Title)
	assert.Equal(t, []string{}, h.CompletedDates)

	for _, d := range []string{ago(1), ago(2), ago(3)} {
		_, done, err := svc.ToggleHabit("meditate", d)
		require.NoError(t, err)
		assert.True(t, done)
	}

	got, err := svc.Habit(h.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Streak, "today not done yet keeps the streak")

	got, done, err := svc.ToggleHabit(h.ID, "")
	require.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, 4, got.Streak)
	assert.Contains(t, got.CompletedDates, ago(0))

	got, done, err = svc.ToggleHabit(h.ID, ago(2))
	require.NoError(t, err)
	assert.False(t, done)
	assert.Equal(t, 2, got.Streak)

	stored := kvstore.Load(svc.Store(), schema.Habits, []models.Habit(nil))
	require.Len(t, stored, 1)
	assert.Equal(t, 2, stored[0].Streak, "stored streak is refreshed on mutation")

	_, _, err = svc.ToggleHabit(h.ID, "15/06/2025")
	assert.ErrorIs(t, err, ErrInvalidDate)

	removed, err := svc.DeleteHabit("Meditate")
	require.NoError(t, err)
	assert.Equal(t, h.ID, removed.ID)
	assert.Empty(t, svc.Habits())
}

func TestHabitsRecomputesStaleStreak(t *testing.T) {
	svc := newService(t)
	kvstore.Save(svc.Store(), schema.Habits, []models.Habit{
		{ID: "h", Title: "Walk", Streak: 40, CompletedDates: []string{ago(1), ago(1), ago(3)}},
	})

	list := svc.Habits()
	require.Len(t, list, 1)
	assert.Equal(t, 1, list[0].Streak)
	assert.Equal(t, []string{ago(1), ago(3)}, list[0].CompletedDates)
}

func TestTodos(t *testing.T) {
	svc := newService(t)

	_, err := svc.AddTodo("", models.PriorityLow)
	assert.ErrorIs(t, err, ErrEmptyText)

	low, err := svc.AddTodo("Water plants", models.PriorityLow)
	require.NoError(t, err)
	def, err := svc.AddTodo("Call mom", "")
	require.NoError(t, err)
	assert.Equal(t, models.PriorityMedium, def.Priority)
	high, err := svc.AddTodo("File taxes", models.PriorityHigh)
	require.NoError(t, err)

	_, err = svc.ToggleTodo(high.ID)
	require.NoError(t, err)

	var order []string
	for _, td := range svc.SortedTodos() {
		order = append(order, td.Text)
	}
	assert.Equal(t, []string{"Call mom", "Water plants", "File taxes"}, order)

	var stored []string
	for _, td := range svc.Todos() {
		stored = append(stored, td.ID)
	}
	assert.Equal(t, []string{low.ID, def.ID, high.ID}, stored, "storage keeps insertion order")

	removed, err := svc.DeleteTodo("call mom")
	require.NoError(t, err)
	assert.Equal(t, def.ID, removed.ID)
	assert.Len(t, svc.Todos(), 2)
}

func TestSubtasks(t *testing.T) {
	svc := newService(t)
	td, err := svc.AddTodo("Move house", models.PriorityHigh)
	require.NoError(t, err)

	_, err = svc.AddSubtasks(td.ID, " ", "")
	assert.ErrorIs(t, err, ErrEmptyText)

	td, err = svc.AddSubtasks(td.ID, "Book van", " ", "Pack books")
	require.NoError(t, err)
	require.Len(t, td.Subtasks, 2)

	td, err = svc.AddSubtasks(td.ID, "Change address")
	require.NoError(t, err)
	require.Len(t, td.Subtasks, 3)
	assert.Equal(t, "Change address", td.Subtasks[2].Text, "new subtasks are appended")

	td, err = svc.ToggleSubtask(td.ID, "2")
	require.NoError(t, err)
	assert.True(t, td.Subtasks[1].Completed)

	td, err = svc.ToggleSubtask(td.ID, "book van")
	require.NoError(t, err)
	assert.True(t, td.Subtasks[0].Completed)

	td, err = svc.ToggleSubtask(td.ID, td.Subtasks[2].ID)
	require.NoError(t, err)
	assert.True(t, td.Subtasks[2].Completed)
	assert.False(t, td.Completed, "completing every subtask does not complete the todo")

	_, err = svc.ToggleSubtask(td.ID, "9")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestJournal(t *testing.T) {
	svc := newService(t)

	first, err := svc.AddEntry("First day", models.MoodHappy)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-15T09:30:00Z", first.Date)
	second, err := svc.AddEntry("Second thoughts", "")
	require.NoError(t, err)

	entries := svc.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, second.ID, entries[0].ID, "newest first")

	_, err = svc.EditEntry(first.ID, "  ")
	assert.ErrorIs(t, err, ErrEmptyText)

	e, err := svc.SetAnalysis(first.ID, "You sound upbeat.")
	require.NoError(t, err)
	assert.Equal(t, "You sound upbeat.", e.AIAnalysis)

	e, err = svc.SetAnalysis(first.ID, "Something else")
	require.NoError(t, err)
	assert.Equal(t, "You sound upbeat.", e.AIAnalysis, "analysis is only written once")

	e, err = svc.EditEntry(first.ID, "First day, revised")
	require.NoError(t, err)
	assert.Equal(t, "First day, revised", e.Content)
	assert.Equal(t, first.Date, e.Date)
	assert.Equal(t, "You sound upbeat.", e.AIAnalysis)

	assert.Len(t, svc.EntriesOn("2025-06-15"), 2)
	assert.Empty(t, svc.EntriesOn("2025-06-14"))

	_, err = svc.DeleteEntry(second.ID)
	require.NoError(t, err)
	assert.Len(t, svc.Entries(), 1)
}

func TestDailyLogUpsert(t *testing.T) {
	svc := newService(t)

	blank, found, err := svc.DailyLog("2025-06-10")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, models.DailyLog{Date: "2025-06-10"}, blank)

	_, err = svc.SaveDailyLog(models.DailyLog{Date: "2025-06-12", Weight: models.Float(71)})
	require.NoError(t, err)
	_, err = svc.SaveDailyLog(models.DailyLog{Date: "2025-06-10", Workout: true})
	require.NoError(t, err)
	require.Len(t, svc.DailyLogs(), 2)

	_, err = svc.SaveDailyLog(models.DailyLog{Date: "2025-06-12", Weight: models.Float(70.5), Meals: models.Meals{Lunch: true}})
	require.NoError(t, err)

	logs := svc.DailyLogs()
	require.Len(t, logs, 2, "upsert keeps the collection size")
	assert.Equal(t, "2025-06-10", logs[0].Date)
	assert.Equal(t, 70.5, *logs[1].Weight)
	assert.Equal(t, 1, logs[1].Meals.Count())

	_, err = svc.SaveDailyLog(models.DailyLog{Weight: models.Float(-1)})
	assert.ErrorIs(t, err, ErrInvalidWeight)

	today, err := svc.UpdateDailyLog("", func(l *models.DailyLog) { l.Workout = true })
	require.NoError(t, err)
	assert.Equal(t, "2025-06-15", today.Date)
	assert.Len(t, svc.DailyLogs(), 3)
}

func TestWeightsAndTrend(t *testing.T) {
	svc := newService(t)
	for i := 20; i >= 0; i-- {
		l := models.DailyLog{Date: ago(i)}
		switch {
		case i%3 == 0:
			l.Weight = models.Float(80 - float64(20-i)/10)
		case i%3 == 1:
			l.Workout = true
		}
		_, err := svc.SaveDailyLog(l)
		require.NoError(t, err)
	}

	weights := svc.Weights(3)
	require.Len(t, weights, 3)
	assert.Equal(t, ago(6), weights[0].Date)
	assert.Equal(t, ago(0), weights[2].Date)

	latest, ok := svc.LatestWeight()
	require.True(t, ok)
	assert.Equal(t, ago(0), latest.Date)

	trend := svc.HealthTrend(0)
	require.Len(t, trend, 14)
	for _, l := range trend {
		assert.True(t, l.Weight != nil || l.Workout, "trend only holds weighed or workout days: %s", l.Date)
	}
	assert.Equal(t, ago(0), trend[len(trend)-1].Date)
}

func TestNewsCache(t *testing.T) {
	svc := newService(t)
	_, ok := svc.News()
	assert.False(t, ok)

	svc.CacheNews([]models.NewsItem{{Title: "Rain expected", Source: "Weather"}})
	c, ok := svc.News()
	require.True(t, ok)
	assert.Equal(t, "2025-06-15T09:30:00Z", c.Date)
	assert.Len(t, c.Items, 1)
}

func TestProgressAndBadges(t *testing.T) {
	svc := newService(t)

	week := make([]string, 0, 7)
	for i := 0; i < 7; i++ {
		week = append(week, ago(i))
	}
	kvstore.Save(svc.Store(), schema.Habits, []models.Habit{
		{ID: "a", Title: "Four of seven", CompletedDates: []string{ago(0), ago(2), ago(4), ago(6)}},
		{ID: "b", Title: "Every day", CompletedDates: week},
	})
	for i := 0; i < 10; i++ {
		td, err := svc.AddTodo(fmt.Sprintf("task %d", i), models.PriorityLow)
		require.NoError(t, err)
		_, err = svc.ToggleTodo(td.ID)
		require.NoError(t, err)
	}
	_, err := svc.AddTodo("left over", "")
	require.NoError(t, err)
	for _, d := range []string{ago(5), ago(3), ago(1)} {
		_, err := svc.SaveDailyLog(models.DailyLog{Date: d, Workout: true})
		require.NoError(t, err)
	}

	p := svc.Progress()
	require.Len(t, p.Habits, 2)
	assert.Equal(t, "Every day", p.Habits[0].Habit.Title, "sorted by score")
	assert.InDelta(t, 57.142857, p.Habits[1].Percent, 0.0001)
	assert.Equal(t, TaskStats{Completed: 10, Pending: 1}, p.Tasks)
	assert.Equal(t, 11, p.Tasks.Total())
	assert.Len(t, p.Trend, 3)

	assert.Equal(t, []Badge{BadgeEnergy, BadgeFocused, BadgeUnstoppable, BadgeGardener}, p.Badges)
}

func TestBadgeThresholds(t *testing.T) {
	tests := []struct {
		name   string
		scores []HabitScore
		tasks  TaskStats
		logs   []models.DailyLog
		want   []Badge
	}{
		{name: "nothing", want: nil},
		{
			name: "workouts outside the last seven logs",
			logs: []models.DailyLog{
				{Workout: true}, {Workout: true}, {Workout: true},
				{}, {}, {}, {}, {}, {}, {Workout: true},
			},
			want: nil,
		},
		{name: "nine tasks", tasks: TaskStats{Completed: 9}, want: nil},
		{
			name:   "exactly fifty percent is not a gardener",
			scores: []HabitScore{{Score: scoreOf(50)}, {Score: scoreOf(100)}},
			want:   nil,
		},
		{
			name:   "streak of seven",
			scores: []HabitScore{{Habit: models.Habit{Streak: 7}, Score: scoreOf(20)}},
			want:   []Badge{BadgeUnstoppable},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Badges(tt.scores, tt.tasks, tt.logs))
		})
	}
}

func TestSummary(t *testing.T) {
	svc := newService(t)
	_, err := svc.AddHabit("Read")
	require.NoError(t, err)
	_, _, err = svc.ToggleHabit("Read", "")
	require.NoError(t, err)
	_, err = svc.AddHabit("Run")
	require.NoError(t, err)
	_, err = svc.AddTodo("Groceries", "")
	require.NoError(t, err)

	sum := svc.Summary()
	assert.Equal(t, GreetingMorning, sum.Greeting)
	assert.Equal(t, 2, sum.ActiveHabits)
	assert.Equal(t, 1, sum.DoneToday)
	assert.Equal(t, 1, sum.PendingTodos)
	assert.Nil(t, sum.LatestWeight)

	_, err = svc.SaveDailyLog(models.DailyLog{Weight: models.Float(68)})
	require.NoError(t, err)
	sum = svc.Summary()
	require.NotNil(t, sum.LatestWeight)
	assert.Equal(t, 68.0, sum.LatestWeight.Weight)
}

func TestGreetingFor(t *testing.T) {
	at := func(h int) time.Time { return time.Date(2025, 1, 1, h, 0, 0, 0, time.UTC) }
	assert.Equal(t, GreetingNight, GreetingFor(at(4)))
	assert.Equal(t, GreetingMorning, GreetingFor(at(5)))
	assert.Equal(t, GreetingMorning, GreetingFor(at(11)))
	assert.Equal(t, GreetingAfternoon, GreetingFor(at(12)))
	assert.Equal(t, GreetingAfternoon, GreetingFor(at(17)))
	assert.Equal(t, GreetingNight, GreetingFor(at(18)))
}

func TestPreferences(t *testing.T) {
	svc := newService(t)
	assert.Equal(t, DefaultPreferences(), svc.Preferences())

	p := svc.Preferences()
	p.Notifications = true
	p.NotificationTime = "7pm"
	assert.Error(t, svc.SavePreferences(p))

	p.NotificationTime = "19:00"
	require.NoError(t, svc.SavePreferences(p))
	assert.Equal(t, p, svc.Preferences())
}

func scoreOf(pct float64) habits.Score {
	return habits.Score{Percent: pct, Band: habits.BandFor(pct)}
}
