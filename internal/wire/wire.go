// Package wire assembles the application: adapters into services, services
// into the port surface the gateway and CLI consume. Construction is
// explicit; callers own the database handle and channel provider.
package wire

import (
	"database/sql"

	"github.com/example/taysr/internal/adapters/sqlite"
	"github.com/example/taysr/internal/app"
	"github.com/example/taysr/internal/ports/primary"
	"github.com/example/taysr/internal/ports/secondary"
)

// App bundles the primary ports of a fully wired bot.
type App struct {
	Tasks    primary.TaskService
	TaskList primary.TaskListService
	Configs  primary.ServerConfigService
	Counters primary.CounterService
	Flow     primary.CreationFlowService
}

// Build wires the full application against a database and a channel
// provider. commandName is the branded command referenced in rendered text.
func Build(database *sql.DB, channels secondary.ChannelProvider, commandName string) *App {
	taskRepo := sqlite.NewTaskRepository(database)
	counterRepo := sqlite.NewCounterRepository(database)
	configRepo := sqlite.NewServerConfigRepository(database)

	counters := app.NewCounterService(counterRepo, taskRepo)
	taskList := app.NewTaskListService(taskRepo, configRepo, channels, commandName)
	tasks := app.NewTaskService(taskRepo, counters, taskList)
	configs := app.NewServerConfigService(configRepo, channels, taskList)
	flow := app.NewCreationFlowService(tasks, counters, configRepo)

	return &App{
		Tasks:    tasks,
		TaskList: taskList,
		Configs:  configs,
		Counters: counters,
		Flow:     flow,
	}
}

// Maintenance bundles what the offline CLI commands need: the counter
// service plus direct repository access for diagnostics. No channel
// provider is involved.
type Maintenance struct {
	Counters    primary.CounterService
	CounterRepo secondary.CounterRepository
	ConfigRepo  secondary.ServerConfigRepository
	TaskRepo    secondary.TaskRepository
}

// BuildMaintenance wires the offline surface against a database.
func BuildMaintenance(database *sql.DB) *Maintenance {
	taskRepo := sqlite.NewTaskRepository(database)
	counterRepo := sqlite.NewCounterRepository(database)
	configRepo := sqlite.NewServerConfigRepository(database)

	return &Maintenance{
		Counters:    app.NewCounterService(counterRepo, taskRepo),
		CounterRepo: counterRepo,
		ConfigRepo:  configRepo,
		TaskRepo:    taskRepo,
	}
}
