package cfg

type Cfg struct {
	// Storage locations
	SubscriptionsDir string
	NotesDir         string
	ImagesDir        string
	DBPath           string

	// Application configuration
	Port              string
	WorkerCount       int
	SchedulerInterval int
	APIAccessKey      string

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
