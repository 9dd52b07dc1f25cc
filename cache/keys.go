package cache

// Key helpers for the PLM resource namespace. Centralizing key construction
// keeps the classifier signals (pipeline:def:, tasks:, runs:, ...) in one
// place so callers cannot drift from the naming convention.

// PipelineListKey returns the key for the pipeline list.
func PipelineListKey() string { return "pipelines:list" }

// PipelineDefinitionKey returns the key for a pipeline definition.
func PipelineDefinitionKey(pipelineID string) string { return "pipeline:def:" + pipelineID }

// PipelineRunsKey returns the key for a pipeline's runs.
func PipelineRunsKey(pipelineID string) string { return "pipeline:runs:" + pipelineID }

// PipelineEventsKey returns the key for a pipeline's event stream.
func PipelineEventsKey(pipelineID string) string { return "pipeline:events:" + pipelineID }

// RunDetailsKey returns the key for one run's detail record.
func RunDetailsKey(runID string) string { return "run:details:" + runID }

// AllRunsKey returns the key for the run list.
func AllRunsKey() string { return "runs:list" }

// TasksKey returns the key for the task library list.
func TasksKey() string { return "tasks:list" }

// PipelineResourcesKey returns the key for pipeline resources.
func PipelineResourcesKey() string { return "pipeline:resources" }

// GroupsKey returns the key for the group list.
func GroupsKey() string { return "groups:list" }

// SecretsKey returns the key for secret metadata (names only, never values).
func SecretsKey() string { return "secrets:list" }

// TriggersKey returns the key for the trigger list.
func TriggersKey() string { return "triggers:list" }

// AccessConfigKey returns the key for access configurations.
func AccessConfigKey() string { return "access-config:list" }
