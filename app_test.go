package voxmorph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counterResource struct {
	value int
}

type recorderModule struct {
	installed *bool
}

func (m recorderModule) Install(app *App, cmd *Commands) {
	*m.installed = true
	cmd.AddResources(&counterResource{})
}

func TestApp_ResolvesSystemDependencies(t *testing.T) {
	app := NewApp()
	app.Commands().AddResources(&counterResource{value: 1})

	app.UseSystem(Update, func(c *counterResource) {
		c.value++
	})
	app.Step()
	app.Step()

	c, ok := Resource[counterResource](app)
	require.True(t, ok)
	assert.Equal(t, 3, c.value)
}

func TestApp_InjectsCommands(t *testing.T) {
	app := NewApp()
	ran := false
	app.UseSystem(Update, func(cmd *Commands) {
		ran = true
		cmd.AddResources(&counterResource{value: 7})
	})
	app.Step()

	require.True(t, ran)
	c, ok := Resource[counterResource](app)
	require.True(t, ok)
	assert.Equal(t, 7, c.value)
}

func TestApp_StagesRunInOrder(t *testing.T) {
	app := NewApp()
	var order []Stage
	app.UseSystem(PostUpdate, func(cmd *Commands) { order = append(order, PostUpdate) })
	app.UseSystem(PreUpdate, func(cmd *Commands) { order = append(order, PreUpdate) })
	app.UseSystem(Update, func(cmd *Commands) { order = append(order, Update) })

	app.Step()
	assert.Equal(t, []Stage{PreUpdate, Update, PostUpdate}, order)
}

func TestApp_BuildInstallsModulesOnce(t *testing.T) {
	installed := false
	app := NewApp().UseModules(recorderModule{installed: &installed})

	app.Build()
	require.True(t, installed)

	installed = false
	app.Build()
	assert.False(t, installed, "second Build must be a no-op")
}

func TestApp_DuplicateResourcePanics(t *testing.T) {
	app := NewApp()
	app.Commands().AddResources(&counterResource{})
	assert.Panics(t, func() {
		app.Commands().AddResources(&counterResource{})
	})
}

func TestApp_NonPointerResourcePanics(t *testing.T) {
	app := NewApp()
	assert.Panics(t, func() {
		app.Commands().AddResources(counterResource{})
	})
}

func TestApp_UnresolvableDependencyPanics(t *testing.T) {
	app := NewApp()
	app.UseSystem(Update, func(c *counterResource) {})
	assert.Panics(t, func() {
		app.Step()
	})
}

func TestResource_MissingReportsFalse(t *testing.T) {
	_, ok := Resource[counterResource](NewApp())
	assert.False(t, ok)
}
