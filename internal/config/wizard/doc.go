// Package wizard provides an interactive configuration wizard for clusterup.
//
// It guides users through creating the installer settings file with
// charmbracelet/huh forms. RunWizard collects a WizardResult, BuildConfig
// turns it into a config.Config, and WriteConfig writes the YAML file.
package wizard
