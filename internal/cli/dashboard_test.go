package cli

import (
	"testing"
	"time"

	"github.com/catchsup/catchsup/internal/teatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dashboardDriver(t *testing.T, app *App) *teatest.Driver {
	t.Helper()
	d := teatest.New(t, newDashboardModel(app))
	d.DrainInit()
	return d
}

func TestDashboard_ListsGoals(t *testing.T) {
	app := testApp(t)
	app.Goals.Create("Stretch", "", app.now())
	app.Goals.Create("Piano", "", app.now())

	d := dashboardDriver(t, app)
	d.Send(dashboardTickMsg(app.now()))

	view := d.View()
	assert.Contains(t, view, "Stretch")
	assert.Contains(t, view, "Piano")
}

func TestDashboard_StartAndFinishSession(t *testing.T) {
	app := testApp(t)
	app.Goals.Create("Stretch", "", app.now())
	app.Goals.Create("Piano", "", app.now())

	d := dashboardDriver(t, app)
	d.Send(dashboardTickMsg(app.now()))

	d.PressDown()
	d.PressEnter()

	at := app.Store.GetState().ActiveTraining
	require.NotNil(t, at)
	assert.Equal(t, int64(2), at.GoalID, "cursor moved to the second goal")
	assert.Contains(t, d.View(), "Training Piano")

	d.PressKey('f')
	assert.Nil(t, app.Store.GetState().ActiveTraining)
	require.Len(t, app.Store.GetState().TrainingLogs, 1)
}

func TestDashboard_CancelSession(t *testing.T) {
	app := testApp(t)
	app.Goals.Create("Stretch", "", app.now())

	d := dashboardDriver(t, app)
	d.Send(dashboardTickMsg(app.now()))
	d.PressEnter()
	require.NotNil(t, app.Store.GetState().ActiveTraining)

	d.PressKey('c')
	assert.Nil(t, app.Store.GetState().ActiveTraining)
	assert.Empty(t, app.Store.GetState().TrainingLogs)
}

func TestDashboard_QuietToggle(t *testing.T) {
	app := testApp(t)

	d := dashboardDriver(t, app)
	d.PressKey('n')
	assert.True(t, app.Store.GetState().Scheduler.NoDisturbUntil > 0)

	d.PressKey('n')
	assert.Zero(t, app.Store.GetState().Scheduler.NoDisturbUntil)
}

func TestDashboard_Quit(t *testing.T) {
	app := testApp(t)
	d := dashboardDriver(t, app)
	d.PressKey('q')
	assert.True(t, d.Quitting)
}

func TestDashboard_CursorClampsWhenGoalsShrink(t *testing.T) {
	app := testApp(t)
	app.Goals.Create("Stretch", "", app.now())
	app.Goals.Create("Piano", "", app.now())

	d := dashboardDriver(t, app)
	d.Send(dashboardTickMsg(app.now()))
	d.PressDown()

	require.NoError(t, app.Goals.Delete(2))
	d.Send(dashboardTickMsg(app.now().Add(time.Second)))

	d.PressEnter()
	at := app.Store.GetState().ActiveTraining
	require.NotNil(t, at)
	assert.Equal(t, int64(1), at.GoalID)
}
