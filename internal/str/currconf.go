//    AyracGoServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package str

type CurrentConfiguration struct {
	BlackAndWhite bool          `yaml:"BlackAndWhite"`
	CacheBackend  string        `yaml:"CacheBackend"` // "none", "sqlite3", "sqlite", "postgres"
	CacheDSN      string        `yaml:"CacheDSN"`
	CacheTTLSec   int           `yaml:"CacheTTLSec"` // 0: keep forever
	ConfigFile    string        `json:"-" toml:"-" yaml:"-"`
	CORSOrigins   string        `yaml:"CORSOrigins"`
	EchoLog       int           `yaml:"EchoLog"` // 0: "none", 1: "terse", 2: "prolix", 3: "prolix+remoteip"
	Gzip          bool          `yaml:"Gzip"`
	HostIP        string        `yaml:"HostIP"`
	HostPort      int           `yaml:"HostPort"`
	LogLevel      int           `yaml:"LogLevel"`
	PGLogin       PostgresLogin `yaml:"PGLogin"`
	ProfileCPU    bool          `yaml:"ProfileCPU"`
	ProfileMEM    bool          `yaml:"ProfileMEM"`
	QuietStart    bool          `yaml:"QuietStart"`
	SelfTest      int           `yaml:"SelfTest"`
	TaggerTimeout int           `yaml:"TaggerTimeout"` // seconds
	TaggerURL     string        `yaml:"TaggerURL"`
	TooltipOffset int           `yaml:"TooltipOffset"`
}
