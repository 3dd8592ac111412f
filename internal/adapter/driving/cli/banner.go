package cli

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/costpulse/costpulse/pkg/version"
)

// displayWelcomeBanner prints the wordmark and version line.
func displayWelcomeBanner(versionStr string) {
	banner := `
         ██████╗ ██████╗ ███████╗████████╗██████╗ ██╗   ██╗██╗     ███████╗███████╗
        ██╔════╝██╔═══██╗██╔════╝╚══██╔══╝██╔══██╗██║   ██║██║     ██╔════╝██╔════╝
        ██║     ██║   ██║███████╗   ██║   ██████╔╝██║   ██║██║     ███████╗█████╗
        ██║     ██║   ██║╚════██║   ██║   ██╔═══╝ ██║   ██║██║     ╚════██║██╔══╝
        ╚██████╗╚██████╔╝███████║   ██║   ██║     ╚██████╔╝███████╗███████║███████╗
         ╚═════╝ ╚═════╝ ╚══════╝   ╚═╝   ╚═╝      ╚═════╝ ╚══════╝╚══════╝╚══════╝
        `
	yellow := color.New(color.FgYellow, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()

	fmt.Println(yellow(banner))

	formattedVersion := version.FormatVersion()
	fmt.Println(blue(fmt.Sprintf("CostPulse CLI (v%s)", formattedVersion)))
}
