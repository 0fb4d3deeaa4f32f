package main

import (
	"flag"
	"fmt"
	"os"
)

type AppFlags struct {
	Payload     string
	PayloadFile string
	ConfigFile  string
	Sensitivity string
	Pretty      bool
}

func ParseFlags() AppFlags {
	payload := flag.String("payload", "", "A single decoded QR payload to analyze.")
	payloadAlias := flag.String("p", "", "Alias for -payload")

	payloadFile := flag.String("file", "", "Path to a text file with one payload per line.")
	payloadFileAlias := flag.String("f", "", "Alias for -file")

	configFile := flag.String("config", "", "Path to the YAML/JSON configuration file. If not set, searches default locations.")
	configFileAlias := flag.String("c", "", "Alias for -config")

	sensitivity := flag.String("sensitivity", "BALANCED", "Sensitivity mode: LENIENT, BALANCED or AGGRESSIVE.")
	sensitivityAlias := flag.String("s", "", "Alias for -sensitivity")

	pretty := flag.Bool("pretty", false, "Indent JSON output.")

	flag.Parse()

	flags := AppFlags{Pretty: *pretty}

	if *payload != "" {
		flags.Payload = *payload
	} else if *payloadAlias != "" {
		flags.Payload = *payloadAlias
	}

	if *payloadFile != "" {
		flags.PayloadFile = *payloadFile
	} else if *payloadFileAlias != "" {
		flags.PayloadFile = *payloadFileAlias
	}

	if *configFile != "" {
		flags.ConfigFile = *configFile
	} else if *configFileAlias != "" {
		flags.ConfigFile = *configFileAlias
	}

	flags.Sensitivity = *sensitivity
	if *sensitivityAlias != "" {
		flags.Sensitivity = *sensitivityAlias
	}

	if flags.Payload == "" && flags.PayloadFile == "" {
		fmt.Fprintln(os.Stderr, "[FATAL] either -payload or -file is required")
		flag.Usage()
		os.Exit(1)
	}

	return flags
}
