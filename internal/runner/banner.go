package runner

import (
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/pd-sweep/pkg/version"
)

const banner = `
                __                               
    ____  ____/ /     ______      _____  ___  ____ 
   / __ \/ __  /_____/ ___/ | /| / / _ \/ _ \/ __ \
  / /_/ / /_/ /_____(__  )| |/ |/ /  __/  __/ /_/ /
 / .___/\__,_/     /____/ |__/|__/\___/\___/ .___/ 
/_/                                       /_/      
`

// showBanner is used to show the banner to the user
func showBanner() {
	gologger.Print().Msgf("%s\n", au.Cyan(banner))
	gologger.Print().Msgf("\t\tpd-sweep %s\n\n", version.GetVersion())
}
