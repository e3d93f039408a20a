//    AyracGoServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lnch

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"text/template"

	"github.com/e-gun/AyracGoServer/internal/mm"
	"github.com/e-gun/AyracGoServer/internal/str"
	"github.com/e-gun/AyracGoServer/internal/vv"
)

var (
	Config *str.CurrentConfiguration
	Msg    = mm.NewMessageMaker(vv.MYNAME, vv.SHORTNAME, vv.VERSION)
)

var (
	ErrMissingValue = errors.New("command line switch needs a value")
)

// ConfigAtLaunch - read the configuration values from a file and/or the command line
func ConfigAtLaunch() {
	const (
		FAIL3 = `Could not parse the information in '%s'. Skipping and attempting to use built-in defaults instead: %s`
		FAIL7 = "ConfigAtLaunch() failed to execute help text template"
		LOADD = "'%s' loaded"
		NONE  = "no configuration file found; using built-in defaults"
	)

	Config = BuildDefaultConfig()
	args := os.Args[1:]

	cf, err := FindConfigFile(args)
	switch {
	case err != nil:
		Msg.EC(err)
	case cf == "":
		Msg.TMI(NONE)
	default:
		if lerr := LoadConfigFile(cf, Config); lerr != nil {
			Msg.CRIT(fmt.Sprintf(FAIL3, cf, lerr))
			Config = BuildDefaultConfig()
		} else {
			Config.ConfigFile = cf
			Msg.TMI(fmt.Sprintf(LOADD, cf))
		}
	}

	help := func() {
		PrintVersion(*Config)
		PrintBuildInfo(*Config)

		var b bytes.Buffer
		if ee := HelpText(&b, *Config); ee != nil {
			Msg.CRIT(FAIL7)
		}
		fmt.Println(Msg.ColStyle(b.String()))
		os.Exit(0)
	}

	for _, a := range args {
		switch a {
		case "-vv":
			PrintVersion(*Config)
			PrintBuildInfo(*Config)
			os.Exit(1)
		case "-v":
			fmt.Println(vv.VERSION + VersSuppl)
			os.Exit(1)
		case "-h":
			help()
		}
	}

	Msg.EC(ApplyArgs(Config, args))
	SetTooltipOffset(Config.TooltipOffset)
}

// ApplyArgs - overlay the command line switches onto a configuration
func ApplyArgs(cfg *str.CurrentConfiguration, args []string) error {
	const (
		FAIL1 = "could not parse '%s' as PostgreSQL credentials; use the following template: %s: %w"
		FAIL2 = `{"Pass": "YOURPASSWORDHERE" ,"Host": "127.0.0.1", "Port": 5432, "DBName": "ayracDB" ,"User": "ayrac_wr"}`
		FAIL3 = "%s %s: %w"
	)

	value := func(i int) (string, error) {
		if i+1 >= len(args) {
			return "", fmt.Errorf("%w: %s", ErrMissingValue, args[i])
		}
		return args[i+1], nil
	}

	number := func(i int) (int, error) {
		v, err := value(i)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf(FAIL3, args[i], v, err)
		}
		return n, nil
	}

	var err error
	for i, a := range args {
		switch a {
		case "-bw":
			cfg.BlackAndWhite = true
		case "-cb":
			cfg.CacheBackend, err = value(i)
		case "-cd":
			cfg.CacheDSN, err = value(i)
		case "-co":
			cfg.CORSOrigins, err = value(i)
		case "-ct":
			cfg.CacheTTLSec, err = number(i)
		case "-el":
			cfg.EchoLog, err = number(i)
		case "-gl":
			cfg.LogLevel, err = number(i)
		case "-gz":
			cfg.Gzip = true
		case "-of":
			cfg.TooltipOffset, err = number(i)
		case "-pc":
			cfg.ProfileCPU = true
		case "-pg":
			var js string
			if js, err = value(i); err == nil {
				var pl str.PostgresLogin
				if jerr := json.Unmarshal([]byte(js), &pl); jerr != nil {
					return fmt.Errorf(FAIL1, js, FAIL2, jerr)
				}
				cfg.PGLogin = pl
			}
		case "-pm":
			cfg.ProfileMEM = true
		case "-q":
			cfg.QuietStart = true
		case "-sa":
			cfg.HostIP, err = value(i)
		case "-sp":
			cfg.HostPort, err = number(i)
		case "-st":
			cfg.SelfTest += 1
		case "-tt":
			cfg.TaggerTimeout, err = number(i)
		case "-tu":
			cfg.TaggerURL, err = value(i)
		default:
			// do nothing
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// BuildDefaultConfig - return a CurrentConfiguration filled out with various default values
func BuildDefaultConfig() *str.CurrentConfiguration {
	var c str.CurrentConfiguration
	c.BlackAndWhite = vv.BLACKANDWHITE
	c.CacheBackend = vv.CACHEBACKEND
	c.CacheDSN = vv.CACHEDSN
	c.CacheTTLSec = vv.CACHETTLSEC
	c.CORSOrigins = vv.CORSORIGINS
	c.EchoLog = vv.DEFAULTECHOLOGLEVEL
	c.Gzip = vv.USEGZIP
	c.HostIP = vv.SERVEDFROMHOST
	c.HostPort = vv.SERVEDFROMPORT
	c.LogLevel = vv.DEFAULTGOLOGLEVEL
	c.ProfileCPU = false
	c.ProfileMEM = false
	c.QuietStart = false
	c.SelfTest = 0
	c.TaggerTimeout = vv.TAGGERTIMEOUT
	c.TaggerURL = vv.TAGGERURL
	c.TooltipOffset = vv.TOOLTIPOFFSET

	pl := str.PostgresLogin{
		Host:   vv.DEFAULTPSQLHOST,
		Port:   vv.DEFAULTPSQLPORT,
		User:   vv.DEFAULTPSQLUSER,
		Pass:   "",
		DBName: vv.DEFAULTPSQLDB,
	}

	c.PGLogin = pl

	return &c
}

// HelpText - fill out HELPTEXTTEMPLATE with the values currently in force
func HelpText(w *bytes.Buffer, cc str.CurrentConfiguration) error {
	conf := cc.ConfigFile
	if conf == "" {
		conf = vv.CONFIGBASIC
	}

	m := map[string]interface{}{
		"cachebe":   cc.CacheBackend,
		"cachedsn":  cc.CacheDSN,
		"cachettl":  cc.CacheTTLSec,
		"conffile":  conf,
		"cors":      cc.CORSOrigins,
		"echoll":    cc.EchoLog,
		"agsll":     cc.LogLevel,
		"host":      cc.HostIP,
		"offset":    cc.TooltipOffset,
		"pgexample": `-pg '{"Pass": "YOURPASSWORDHERE" ,"Host": "127.0.0.1", "Port": 5432, "DBName": "ayracDB" ,"User": "ayrac_wr"}'`,
		"port":      cc.HostPort,
		"projurl":   vv.PROJURL,
		"tagger":    cc.TaggerURL,
		"taggerto":  cc.TaggerTimeout,
	}

	t, err := template.New("").Parse(vv.HELPTEXTTEMPLATE)
	if err != nil {
		return err
	}
	return t.Execute(w, m)
}
