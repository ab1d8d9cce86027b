package main

// Command names
const (
	CmdNameRender   = "render"
	CmdNameValidate = "validate"
	CmdNameVersion  = "version"
	CmdNameHelp     = "help"
)

// Flag names - long form
const (
	FlagTemplate = "template"
	FlagData     = "data"
	FlagDataFile = "data-file"
	FlagOutput   = "output"
	FlagStrict   = "strict"
)

// Flag names - short form
const (
	FlagTemplateShort = "t"
	FlagDataShort     = "d"
	FlagDataFileShort = "f"
	FlagOutputShort   = "o"
)

// Flag default values
const (
	FlagDefaultOutput = "-" // stdout
)

// Input/output conventions
const (
	InputSourceStdin = "-"
	FilePermissions  = 0644
)

// Exit codes
const (
	ExitCodeSuccess    = 0
	ExitCodeError      = 1
	ExitCodeUsageError = 2
	ExitCodeInputError = 4
)

// Error messages
const (
	ErrMsgMissingTemplate     = "template path is required"
	ErrMsgReadFileFailed      = "failed to read input"
	ErrMsgInvalidYAML         = "failed to parse data"
	ErrMsgParseTemplateFailed = "failed to parse template"
	ErrMsgRenderFailed        = "rendering failed"
	ErrMsgWriteOutputFailed   = "failed to write output"
	ErrMsgUnknownCommand      = "unknown command"
)

// Output format strings
const (
	FmtErrorWithCause = "error: %s: %v\n"
	FmtErrorWithName  = "error: %s: %s\n"
	FmtValidOK        = "template is valid"
	FmtVersion        = "liquify version %s (%s)"
)

// Help text
const HelpMainUsage = `liquify - a template rendering tool

Usage:
  liquify <command> [flags]

Commands:
  render      Render a template with data
  validate    Check a template for syntax errors
  version     Print version information
  help        Show help for a command

Use "liquify help <command>" for details on a command.`

const HelpRenderUsage = `Usage: liquify render -t <template> [flags]

Render a template and write the result.

Flags:
  -t, --template <path>    Template file ("-" for stdin)
  -d, --data <yaml>        Inline YAML data
  -f, --data-file <path>   YAML data file
  -o, --output <path>      Output file (default "-" for stdout)
      --strict             Use the strict tag parser`

const HelpValidateUsage = `Usage: liquify validate -t <template> [flags]

Parse a template and report syntax errors without rendering.

Flags:
  -t, --template <path>    Template file ("-" for stdin)
      --strict             Use the strict tag parser`

const HelpVersionUsage = `Usage: liquify version

Print the liquify version and Go runtime version.`

const HelpHelpUsage = `Usage: liquify help [command]

Show general usage or help for a specific command.`
