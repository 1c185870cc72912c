package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash       Shell = "bash"
	ShellZsh        Shell = "zsh"
	ShellFish       Shell = "fish"
	ShellPowerShell Shell = "powershell"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = fmt.Errorf("unsupported shell")

// programName is the binary name completions register for.
const programName = "md2docx"

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagInt
	flagEnum // has predefined values
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string   // --output-dir
	Short    string   // -o (empty if none)
	Type     flagType // completion type
	Desc     string   // help text
	Values   []string // for enum flags
	FileGlob string   // for file flags
}

// commandDef describes a command for completion.
type commandDef struct {
	Name  string
	Desc  string
	Flags []flagDef
	Args  []string // fixed positional values (shells for completion, commands for help)
}

// completionMeta holds completion-specific metadata for flags.
// Flag names, types, and descriptions come from the FlagSet.
type completionMeta struct {
	Values   []string // enum values
	FileGlob string   // file glob pattern
	IsDir    bool     // directory completion
}

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	"parser":     {Values: []string{"line", "goldmark"}},
	"log-level":  {Values: []string{"trace", "debug", "info", "warn", "error"}},
	"log-format": {Values: []string{"console", "json", "pretty"}},

	"config": {FileGlob: "*.yaml,*.yml"},
	"theme":  {FileGlob: "*.yaml,*.yml"},

	"docs-dir":   {IsDir: true},
	"output-dir": {IsDir: true},
	"asset-path": {IsDir: true},
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet.
// Enriches with completion metadata from flagCompletionMeta.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int", "int64", "uint", "uint64":
			fd.Type = flagInt
		default:
			fd.Type = flagString
		}

		if meta, ok := flagCompletionMeta[f.Name]; ok {
			switch {
			case len(meta.Values) > 0:
				fd.Type = flagEnum
				fd.Values = meta.Values
			case meta.FileGlob != "":
				fd.Type = flagFile
				fd.FileGlob = meta.FileGlob
			case meta.IsDir:
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion.
// Flags are extracted from the actual FlagSets.
func getCommands() []commandDef {
	return []commandDef{
		{
			Name:  "generate",
			Desc:  "Convert every manifest document to DOCX",
			Flags: extractFlagsFromFlagSet(buildGenerateFlagSet(&generateFlags{})),
		},
		{
			Name:  "doctor",
			Desc:  "Check sources, logos, config, and Chrome",
			Flags: extractFlagsFromFlagSet(buildDoctorFlagSet(&doctorFlags{})),
		},
		{
			Name: "version",
			Desc: "Show version information",
		},
		{
			Name: "help",
			Desc: "Show help for a command",
			Args: []string{"generate", "doctor", "version", "completion"},
		},
		{
			Name: "completion",
			Desc: "Generate shell completion script",
			Args: []string{string(ShellBash), string(ShellZsh), string(ShellFish), string(ShellPowerShell)},
		},
	}
}

// commandNames returns the names of every registered command.
func commandNames(cmds []commandDef) []string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return names
}

// GenerateCompletion writes shell completion script to w.
// Returns error if shell is unsupported or write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	bw := bufio.NewWriter(w)
	cmds := getCommands()

	switch shell {
	case ShellBash:
		writeBash(bw, cmds)
	case ShellZsh:
		writeZsh(bw, cmds)
	case ShellFish:
		writeFish(bw, cmds)
	case ShellPowerShell:
		writePowerShell(bw, cmds)
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish, powershell)", ErrUnsupportedShell, shell)
	}
	return bw.Flush()
}

// longFlags returns "--name" for every flag, plus "-x" shorthands.
func longFlags(flags []flagDef) []string {
	var out []string
	for _, f := range flags {
		out = append(out, "--"+f.Long)
		if f.Short != "" {
			out = append(out, "-"+f.Short)
		}
	}
	return out
}

// globExtensions turns "*.yaml,*.yml" into ["yaml", "yml"].
func globExtensions(glob string) []string {
	var exts []string
	for _, g := range strings.Split(glob, ",") {
		exts = append(exts, strings.TrimPrefix(strings.TrimSpace(g), "*."))
	}
	return exts
}

// escapeSingle escapes s for use inside a single-quoted shell string.
func escapeSingle(s string) string {
	return strings.ReplaceAll(s, "'", `'\''`)
}

func writeBash(w io.Writer, cmds []commandDef) {
	fn := "_" + programName + "_completions"
	fmt.Fprintf(w, "# bash completion for %s\n\n", programName)
	fmt.Fprintf(w, "%s() {\n", fn)
	fmt.Fprintln(w, `    local cur prev cmd`)
	fmt.Fprintln(w, `    cur="${COMP_WORDS[COMP_CWORD]}"`)
	fmt.Fprintln(w, `    prev="${COMP_WORDS[COMP_CWORD-1]}"`)
	fmt.Fprintln(w, `    cmd="${COMP_WORDS[1]}"`)
	fmt.Fprintln(w)
	fmt.Fprintln(w, `    if [[ ${COMP_CWORD} -eq 1 && "${cur}" != -* ]]; then`)
	fmt.Fprintf(w, "        COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n", strings.Join(commandNames(cmds), " "))
	fmt.Fprintln(w, `        return`)
	fmt.Fprintln(w, `    fi`)
	fmt.Fprintln(w)
	fmt.Fprintln(w, `    case "${prev}" in`)
	for _, f := range cmds[0].Flags {
		pattern := "--" + f.Long
		if f.Short != "" {
			pattern += "|-" + f.Short
		}
		switch f.Type {
		case flagEnum:
			fmt.Fprintf(w, "        %s)\n            COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n            return ;;\n",
				pattern, strings.Join(f.Values, " "))
		case flagFile:
			fmt.Fprintf(w, "        %s)\n            COMPREPLY=( $(compgen -f -X '!*.@(%s)' -- \"${cur}\") $(compgen -d -- \"${cur}\") )\n            return ;;\n",
				pattern, strings.Join(globExtensions(f.FileGlob), "|"))
		case flagDir:
			fmt.Fprintf(w, "        %s)\n            COMPREPLY=( $(compgen -d -- \"${cur}\") )\n            return ;;\n", pattern)
		}
	}
	fmt.Fprintln(w, `    esac`)
	fmt.Fprintln(w)
	fmt.Fprintln(w, `    case "${cmd}" in`)
	for _, c := range cmds {
		words := longFlags(c.Flags)
		if len(c.Args) > 0 {
			words = c.Args
		}
		fmt.Fprintf(w, "        %s)\n            COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") ) ;;\n", c.Name, strings.Join(words, " "))
	}
	fmt.Fprintf(w, "        *)\n            COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") ) ;;\n", strings.Join(longFlags(cmds[0].Flags), " "))
	fmt.Fprintln(w, `    esac`)
	fmt.Fprintln(w, `}`)
	fmt.Fprintln(w)
	fmt.Fprintln(w, `shopt -s extglob`)
	fmt.Fprintf(w, "complete -F %s %s\n", fn, programName)
}

// zshSpec returns the _arguments spec for one flag.
func zshSpec(f flagDef) string {
	desc := "[" + strings.ReplaceAll(escapeSingle(f.Desc), "]", `\]`) + "]"
	var action string
	switch f.Type {
	case flagBool:
		action = ""
	case flagEnum:
		action = ":value:(" + strings.Join(f.Values, " ") + ")"
	case flagFile:
		action = ":file:_files -g '*.(" + strings.Join(globExtensions(f.FileGlob), "|") + ")'"
	case flagDir:
		action = ":directory:_files -/"
	default:
		action = ":value: "
	}
	if f.Short != "" {
		return fmt.Sprintf("'(-%s --%s)'{-%s,--%s}'%s%s'", f.Short, f.Long, f.Short, f.Long, desc, escapeSingle(action))
	}
	return fmt.Sprintf("'--%s%s%s'", f.Long, desc, escapeSingle(action))
}

func writeZsh(w io.Writer, cmds []commandDef) {
	fmt.Fprintf(w, "#compdef %s\n\n", programName)
	fmt.Fprintf(w, "_%s() {\n", programName)
	fmt.Fprintln(w, `    local -a commands`)
	fmt.Fprintln(w, `    commands=(`)
	for _, c := range cmds {
		fmt.Fprintf(w, "        '%s:%s'\n", c.Name, escapeSingle(c.Desc))
	}
	fmt.Fprintln(w, `    )`)
	fmt.Fprintln(w)
	fmt.Fprintln(w, `    if (( CURRENT == 2 )) && [[ ${words[2]} != -* ]]; then`)
	fmt.Fprintln(w, `        _describe 'command' commands`)
	fmt.Fprintln(w, `        return`)
	fmt.Fprintln(w, `    fi`)
	fmt.Fprintln(w)
	fmt.Fprintln(w, `    case ${words[2]} in`)
	for _, c := range cmds {
		fmt.Fprintf(w, "        %s)\n", c.Name)
		switch {
		case len(c.Flags) > 0:
			fmt.Fprintln(w, "            _arguments \\")
			for _, f := range c.Flags {
				fmt.Fprintf(w, "                %s \\\n", zshSpec(f))
			}
			fmt.Fprintln(w, "                && return ;;")
		case len(c.Args) > 0:
			fmt.Fprintf(w, "            _values '%s' %s ;;\n", c.Name, strings.Join(c.Args, " "))
		default:
			fmt.Fprintln(w, "            ;;")
		}
	}
	fmt.Fprintln(w, "        *)")
	fmt.Fprintln(w, "            _arguments \\")
	for _, f := range cmds[0].Flags {
		fmt.Fprintf(w, "                %s \\\n", zshSpec(f))
	}
	fmt.Fprintln(w, "                && return ;;")
	fmt.Fprintln(w, `    esac`)
	fmt.Fprintln(w, `}`)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "compdef _%s %s\n", programName, programName)
}

func writeFish(w io.Writer, cmds []commandDef) {
	names := strings.Join(commandNames(cmds), " ")
	fmt.Fprintf(w, "# fish completion for %s\n\n", programName)
	fmt.Fprintf(w, "function __fish_%s_needs_command\n", programName)
	fmt.Fprintln(w, "    set -l cmd (commandline -opc)")
	fmt.Fprintln(w, "    test (count $cmd) -eq 1")
	fmt.Fprintln(w, "end")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "function __fish_%s_using_command\n", programName)
	fmt.Fprintln(w, "    set -l cmd (commandline -opc)")
	fmt.Fprintln(w, "    test (count $cmd) -gt 1; and test $argv[1] = $cmd[2]")
	fmt.Fprintln(w, "end")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "complete -c %s -f\n", programName)
	for _, c := range cmds {
		fmt.Fprintf(w, "complete -c %s -n '__fish_%s_needs_command' -a %s -d '%s'\n",
			programName, programName, c.Name, escapeFish(c.Desc))
	}
	for _, c := range cmds {
		cond := fmt.Sprintf("__fish_%s_using_command %s", programName, c.Name)
		if c.Name == "generate" {
			cond = fmt.Sprintf("__fish_%s_using_command generate; or not __fish_seen_subcommand_from %s", programName, names)
		}
		if len(c.Args) > 0 {
			fmt.Fprintf(w, "complete -c %s -n '%s' -a '%s'\n", programName, cond, strings.Join(c.Args, " "))
		}
		for _, f := range c.Flags {
			line := fmt.Sprintf("complete -c %s -n '%s' -l %s", programName, cond, f.Long)
			if f.Short != "" {
				line += " -s " + f.Short
			}
			switch f.Type {
			case flagEnum:
				line += fmt.Sprintf(" -x -a '%s'", strings.Join(f.Values, " "))
			case flagFile:
				line += " -r -F"
			case flagDir:
				line += " -x -a '(__fish_complete_directories)'"
			case flagString, flagInt:
				line += " -r"
			}
			line += fmt.Sprintf(" -d '%s'", escapeFish(f.Desc))
			fmt.Fprintln(w, line)
		}
	}
}

// escapeFish escapes s for a single-quoted fish string.
func escapeFish(s string) string {
	return strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(s)
}

func writePowerShell(w io.Writer, cmds []commandDef) {
	fmt.Fprintf(w, "# PowerShell completion for %s\n\n", programName)
	fmt.Fprintf(w, "Register-ArgumentCompleter -Native -CommandName %s -ScriptBlock {\n", programName)
	fmt.Fprintln(w, "    param($wordToComplete, $commandAst, $cursorPosition)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "    $elements = $commandAst.CommandElements | ForEach-Object { $_.ToString() }")
	fmt.Fprintln(w, "    $command = if ($elements.Count -gt 1 -and $elements[1] -notlike '-*') { $elements[1] } else { 'generate' }")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "    $commands = @{")
	for _, c := range cmds {
		fmt.Fprintf(w, "        '%s' = '%s'\n", c.Name, escapePowerShell(c.Desc))
	}
	fmt.Fprintln(w, "    }")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "    $options = @{")
	for _, c := range cmds {
		words := longFlags(c.Flags)
		if len(c.Args) > 0 {
			words = c.Args
		}
		quoted := make([]string, len(words))
		for i, word := range words {
			quoted[i] = "'" + word + "'"
		}
		fmt.Fprintf(w, "        '%s' = @(%s)\n", c.Name, strings.Join(quoted, ", "))
	}
	fmt.Fprintln(w, "    }")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "    if ($elements.Count -le 2 -and $wordToComplete -notlike '-*') {")
	fmt.Fprintln(w, "        $commands.Keys | Where-Object { $_ -like \"$wordToComplete*\" } | Sort-Object | ForEach-Object {")
	fmt.Fprintln(w, "            [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $commands[$_])")
	fmt.Fprintln(w, "        }")
	fmt.Fprintln(w, "        return")
	fmt.Fprintln(w, "    }")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "    $options[$command] | Where-Object { $_ -like \"$wordToComplete*\" } | ForEach-Object {")
	fmt.Fprintln(w, "        [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterName', $_)")
	fmt.Fprintln(w, "    }")
	fmt.Fprintln(w, "}")
}

// escapePowerShell escapes s for a single-quoted PowerShell string.
func escapePowerShell(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}

	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2docx completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w, "  powershell  PowerShell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(md2docx completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (before compinit):")
	fmt.Fprintln(w, "    eval \"$(md2docx completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    md2docx completion fish > ~/.config/fish/completions/md2docx.fish")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  PowerShell:")
	fmt.Fprintln(w, "    # Add to $PROFILE:")
	fmt.Fprintln(w, "    md2docx completion powershell | Out-String | Invoke-Expression")
}
