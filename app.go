package voxmorph

import (
	"fmt"
	"reflect"
	"runtime"
)

type systemFn any

// Stage orders systems within a frame. Every Step runs the stages in
// declaration order.
type Stage int

const (
	PreUpdate Stage = iota
	Update
	PostUpdate
	stageCount
)

// Module bundles resources and systems that install together.
type Module interface {
	Install(app *App, cmd *Commands)
}

// App is a small resource container and per-frame scheduler. Systems are
// plain functions whose pointer parameters are resolved from the resource map
// by type. There is no internal loop; the embedder calls Step once per frame.
type App struct {
	resources map[reflect.Type]any
	systems   [stageCount][]systemFn
	modules   []Module
	built     bool
}

func NewApp() *App {
	return &App{
		resources: make(map[reflect.Type]any),
	}
}

// Commands hands modules and systems a mutation surface on the app.
type Commands struct {
	app *App
}

func (app *App) Commands() *Commands {
	return &Commands{app: app}
}

func (cmd *Commands) AddResources(resources ...any) *Commands {
	cmd.app.addResources(resources...)
	return cmd
}

// UseModules registers modules; they install on Build.
func (app *App) UseModules(modules ...Module) *App {
	app.modules = append(app.modules, modules...)
	return app
}

// UseSystem schedules a system in the given stage.
func (app *App) UseSystem(stage Stage, system systemFn) *App {
	if stage < 0 || stage >= stageCount {
		panic(fmt.Sprintf("unknown stage %d", stage))
	}
	app.systems[stage] = append(app.systems[stage], system)
	return app
}

// Build installs all registered modules. Safe to call once.
func (app *App) Build() *App {
	if app.built {
		return app
	}
	app.built = true
	cmd := app.Commands()
	for _, module := range app.modules {
		module.Install(app, cmd)
	}
	return app
}

// Step runs one frame: every stage, every system, in order.
func (app *App) Step() {
	for stage := Stage(0); stage < stageCount; stage++ {
		for _, system := range app.systems[stage] {
			app.callSystem(system)
		}
	}
}

func (app *App) addResources(resources ...any) *App {
	for _, resource := range resources {
		resourceType := reflect.TypeOf(resource)
		if resourceType.Kind() != reflect.Ptr {
			panic(fmt.Sprintf("resources must be pointers, got %s", resourceType))
		}
		if _, ok := app.resources[resourceType.Elem()]; ok {
			panic(fmt.Sprintf("%s is already in resources", resourceType))
		}
		app.resources[resourceType.Elem()] = resource
	}
	return app
}

// Resource fetches a resource by example pointer type, for callers outside
// the system scheduler.
func Resource[T any](app *App) (*T, bool) {
	var zero T
	r, ok := app.resources[reflect.TypeOf(zero)]
	if !ok {
		return nil, false
	}
	return r.(*T), true
}

var typeOfCommands = reflect.TypeOf(Commands{})

func (app *App) callSystem(system systemFn) {
	systemType := reflect.TypeOf(system)
	systemValue := reflect.ValueOf(system)

	args := make([]reflect.Value, systemType.NumIn())
	for i := 0; i < systemType.NumIn(); i++ {
		argType := systemType.In(i)
		if argType.Kind() != reflect.Ptr {
			panic(fmt.Sprintf("system %s takes non-pointer argument %s",
				runtime.FuncForPC(systemValue.Pointer()).Name(), argType))
		}
		underlyingType := argType.Elem()

		if underlyingType == typeOfCommands {
			args[i] = reflect.ValueOf(&Commands{app: app})
			continue
		}
		resource, ok := app.resources[underlyingType]
		if !ok {
			panic(fmt.Sprintf("unable to resolve system dependency\nsystem: %s\ndependency: %s",
				runtime.FuncForPC(systemValue.Pointer()).Name(), argType))
		}
		args[i] = reflect.ValueOf(resource)
	}
	systemValue.Call(args)
}
