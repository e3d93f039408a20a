//    AyracGoServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vv

const (
	MINCONFIG = `
{"TaggerURL": "http://localhost:8000/tag"}
`

	TERMINALTEXT = `Copyright (C) %s / %s
      %s

      This program comes with ABSOLUTELY NO WARRANTY; without even the  
      implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.

      This is free software, and you are welcome to redistribute it and/or 
      modify it under the terms of the GNU General Public License version 3.`

	PROJYEAR = "2022-24"
	PROJAUTH = "E. Gunderson"
	PROJURL  = "https://github.com/e-gun/AyracGoServer"

	HELPTEXTTEMPLATE = `S3command line optionsS0:
   C1-bwC0          disable color output in the console
   C1-cC0 C2{path}C0    read the configuration from this file (C3.jsonC0, C3.tomlC0, C3.yamlC0) [C6currentC0: C3{{.conffile}}C0]
   C1-cbC0 C2{string}C0 tag cache backend: C3noneC0, C3sqlite3C0, C3sqliteC0, C3postgresC0 [C6currentC0: C3{{.cachebe}}C0]
   C1-cdC0 C2{string}C0 tag cache DSN for the sqlite backends [C6currentC0: C3{{.cachedsn}}C0]
   C1-coC0 C2{string}C0 comma-separated CORS origins [C6currentC0: C3{{.cors}}C0]
   C1-ctC0 C2{sec}C0    tag cache lifetime in seconds; C30C0 keeps entries forever [C6currentC0: C3{{.cachettl}}C0]
   C1-elC0 C2{num}C0    set echo server log level (C10-3C0) [C6currentC0: C3{{.echoll}}C0]
   C1-glC0 C2{num}C0    set golang log level (C10-5C0) [C6currentC0: C3{{.agsll}}C0]
   C1-gzC0          enable gzip compression of the server's output
   C1-hC0           print this help information
   C1-ofC0 C2{num}C0    tooltip offset in pixels [C6currentC0: C3{{.offset}}C0]
   C1-pcC0          enable CPU profiling run
   C1-pgC0 C2{string}C0 supply full PostgreSQL credentials for the C3postgresC0 cache C4(*)C0
   C1-pmC0          enable MEM profiling run
   C1-qC0           quiet startup: suppress copyright notice
   C1-saC0 C2{string}C0 server IP address [C6currentC0: C3{{.host}}C0]
   C1-spC0 C2{num}C0    server port [C6currentC0: C3{{.port}}C0]
   C1-stC0          run the self-test suite at launch; repeat the flag to iterate: e.g., "C1-st -stC0" will run twice
   C1-ttC0 C2{sec}C0    tagger request timeout in seconds [C6currentC0: C3{{.taggerto}}C0]
   C1-tuC0 C2{url}C0    tagger endpoint [C6currentC0: C3{{.tagger}}C0]
   C1-vC0           print version info and exit
   C1-vvC0          print full version info and exit

 C4(*)C0 example:
      {{.pgexample}}

 the configuration file is watched: edits to C3LogLevelC0 and C3TooltipOffsetC0 take effect without a restart

 full set of options: C3{{.projurl}}C0
`
)
