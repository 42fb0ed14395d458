package config

var defaultConfig = Config{
	Devtool: Devtool{
		History: 512,
	},
	Demo: Demo{
		Interval: "1s",
		Step:     1,
	},
}

type Config struct {
	Devtool Devtool `json:"devtool"`
	Demo    Demo    `json:"demo"`
}

// Devtool configures the transition recorder behind the inspection API.
type Devtool struct {
	// Disabled turns off transition recording; bricks run with a no-op
	// adapter.
	Disabled bool `json:"disabled"`
	// History is the number of transitions kept for inspection.
	History int `json:"history"`
}

// Demo configures the counter brick run by the demo command.
type Demo struct {
	// Interval between dispatches, parsed by time.ParseDuration.
	Interval string `json:"interval"`
	// Step is the payload of each INC dispatch.
	Step int `json:"step"`
}
