// Package main is the entry point for synthtribe2midi CLI
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jcarter/synthtribe2midi/pkg/api"
	"github.com/jcarter/synthtribe2midi/pkg/converter"
	"github.com/jcarter/synthtribe2midi/pkg/converter/devices"
	"github.com/jcarter/synthtribe2midi/pkg/smf"
	"github.com/jcarter/synthtribe2midi/pkg/tui"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	outputFile string
	deviceName string
	serverPort int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "synthtribe2midi",
	Short: "Convert between MIDI and Behringer SynthTribe formats",
	Long: `synthtribe2midi is a tool for converting between standard MIDI files 
and Behringer SynthTribe .seq/.syx formats.

Supports TD-3 (TB-303 clone) patterns with extensibility for other devices.

Examples:
  synthtribe2midi convert pattern.mid -o pattern.seq
  synthtribe2midi midi2seq pattern.mid -o pattern.seq
  synthtribe2midi seq2midi pattern.seq -o pattern.mid
  synthtribe2midi tui
  synthtribe2midi serve --port 8080
  synthtribe2midi inspect pattern.mid
  synthtribe2midi dump pattern.mid
  synthtribe2midi addtrack pattern.mid 1
  synthtribe2midi rmtrack pattern.mid 0`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
}

var convertCmd = &cobra.Command{
	Use:   "convert <input>",
	Short: "Auto-detect and convert between formats",
	Long:  `Automatically detects input format and converts to the output format based on file extension.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runConvert,
}

var midi2seqCmd = &cobra.Command{
	Use:   "midi2seq <input.mid>",
	Short: "Convert MIDI to .seq format",
	Args:  cobra.ExactArgs(1),
	RunE:  runMIDIToSeq,
}

var seq2midiCmd = &cobra.Command{
	Use:   "seq2midi <input.seq>",
	Short: "Convert .seq to MIDI format",
	Args:  cobra.ExactArgs(1),
	RunE:  runSeqToMIDI,
}

var midi2syxCmd = &cobra.Command{
	Use:   "midi2syx <input.mid>",
	Short: "Convert MIDI to .syx format",
	Args:  cobra.ExactArgs(1),
	RunE:  runMIDIToSyx,
}

var syx2midiCmd = &cobra.Command{
	Use:   "syx2midi <input.syx>",
	Short: "Convert .syx to MIDI format",
	Args:  cobra.ExactArgs(1),
	RunE:  runSyxToMIDI,
}

var seq2syxCmd = &cobra.Command{
	Use:   "seq2syx <input.seq>",
	Short: "Convert .seq to .syx format",
	Args:  cobra.ExactArgs(1),
	RunE:  runSeqToSyx,
}

var syx2seqCmd = &cobra.Command{
	Use:   "syx2seq <input.syx>",
	Short: "Convert .syx to .seq format",
	Args:  cobra.ExactArgs(1),
	RunE:  runSyxToSeq,
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive terminal UI",
	RunE:  runTUI,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	RunE:  runServe,
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <input.mid>",
	Short: "Print a Standard MIDI File's header and per-track event counts",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

var dumpCmd = &cobra.Command{
	Use:   "dump <input.mid>",
	Short: "Print every event in a Standard MIDI File",
	Args:  cobra.ExactArgs(1),
	RunE:  runDump,
}

var addTrackCmd = &cobra.Command{
	Use:   "addtrack <input.mid> <index>",
	Short: "Insert an empty track (End-of-Track only) at index and write the result",
	Args:  cobra.ExactArgs(2),
	RunE:  runAddTrack,
}

var rmTrackCmd = &cobra.Command{
	Use:   "rmtrack <input.mid> <index>",
	Short: "Remove the track at index and write the result",
	Args:  cobra.ExactArgs(2),
	RunE:  runRmTrack,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&deviceName, "device", "d", "td3", "Target device (td3)")

	// Convert command
	convertCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file path (required)")
	_ = convertCmd.MarkFlagRequired("output")

	// midi2seq command
	midi2seqCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output .seq file path")

	// seq2midi command
	seq2midiCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output .mid file path")

	// midi2syx command
	midi2syxCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output .syx file path")

	// syx2midi command
	syx2midiCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output .mid file path")

	// seq2syx command
	seq2syxCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output .syx file path")

	// syx2seq command
	syx2seqCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output .seq file path")

	// serve command
	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 8080, "Server port")

	// addtrack/rmtrack commands
	addTrackCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file path (default: <input>.out.mid)")
	rmTrackCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file path (default: <input>.out.mid)")

	// Add commands
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(midi2seqCmd)
	rootCmd.AddCommand(seq2midiCmd)
	rootCmd.AddCommand(midi2syxCmd)
	rootCmd.AddCommand(syx2midiCmd)
	rootCmd.AddCommand(seq2syxCmd)
	rootCmd.AddCommand(syx2seqCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(addTrackCmd)
	rootCmd.AddCommand(rmTrackCmd)
}

func getDevice() converter.Device {
	switch strings.ToLower(deviceName) {
	case "td3", "td-3":
		return devices.NewTD3()
	default:
		return devices.NewTD3()
	}
}

func getOutputPath(input, defaultExt string) string {
	if outputFile != "" {
		return outputFile
	}
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return base + defaultExt
}

func runConvert(cmd *cobra.Command, args []string) error {
	input := args[0]
	conv := converter.New(getDevice())
	
	fmt.Printf("Converting %s -> %s\n", input, outputFile)
	if err := conv.ConvertFile(input, outputFile); err != nil {
		return err
	}
	fmt.Println("Conversion complete!")
	return nil
}

func runMIDIToSeq(cmd *cobra.Command, args []string) error {
	input := args[0]
	output := getOutputPath(input, ".seq")
	
	conv := converter.New(getDevice())
	data, err := os.ReadFile(input)
	if err != nil {
		return err
	}
	
	result, err := conv.MIDIToSeq(data)
	if err != nil {
		return err
	}
	
	if err := os.WriteFile(output, result, 0644); err != nil {
		return err
	}
	
	fmt.Printf("Converted %s -> %s\n", input, output)
	return nil
}

func runSeqToMIDI(cmd *cobra.Command, args []string) error {
	input := args[0]
	output := getOutputPath(input, ".mid")
	
	conv := converter.New(getDevice())
	data, err := os.ReadFile(input)
	if err != nil {
		return err
	}
	
	result, err := conv.SeqToMIDI(data)
	if err != nil {
		return err
	}
	
	if err := os.WriteFile(output, result, 0644); err != nil {
		return err
	}
	
	fmt.Printf("Converted %s -> %s\n", input, output)
	return nil
}

func runMIDIToSyx(cmd *cobra.Command, args []string) error {
	input := args[0]
	output := getOutputPath(input, ".syx")
	
	conv := converter.New(getDevice())
	data, err := os.ReadFile(input)
	if err != nil {
		return err
	}
	
	result, err := conv.MIDIToSyx(data)
	if err != nil {
		return err
	}
	
	if err := os.WriteFile(output, result, 0644); err != nil {
		return err
	}
	
	fmt.Printf("Converted %s -> %s\n", input, output)
	return nil
}

func runSyxToMIDI(cmd *cobra.Command, args []string) error {
	input := args[0]
	output := getOutputPath(input, ".mid")
	
	conv := converter.New(getDevice())
	data, err := os.ReadFile(input)
	if err != nil {
		return err
	}
	
	result, err := conv.SyxToMIDI(data)
	if err != nil {
		return err
	}
	
	if err := os.WriteFile(output, result, 0644); err != nil {
		return err
	}
	
	fmt.Printf("Converted %s -> %s\n", input, output)
	return nil
}

func runSeqToSyx(cmd *cobra.Command, args []string) error {
	input := args[0]
	output := getOutputPath(input, ".syx")
	
	conv := converter.New(getDevice())
	data, err := os.ReadFile(input)
	if err != nil {
		return err
	}
	
	result, err := conv.SeqToSyx(data)
	if err != nil {
		return err
	}
	
	if err := os.WriteFile(output, result, 0644); err != nil {
		return err
	}
	
	fmt.Printf("Converted %s -> %s\n", input, output)
	return nil
}

func runSyxToSeq(cmd *cobra.Command, args []string) error {
	input := args[0]
	output := getOutputPath(input, ".seq")
	
	conv := converter.New(getDevice())
	data, err := os.ReadFile(input)
	if err != nil {
		return err
	}
	
	result, err := conv.SyxToSeq(data)
	if err != nil {
		return err
	}
	
	if err := os.WriteFile(output, result, 0644); err != nil {
		return err
	}
	
	fmt.Printf("Converted %s -> %s\n", input, output)
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	return tui.Run()
}

func runServe(cmd *cobra.Command, args []string) error {
	fmt.Printf("Starting API server on port %d...\n", serverPort)
	return api.StartServer(serverPort)
}

func printHeaderSummary(f *smf.File) {
	div := f.Division()
	fmt.Printf("File type: %d\n", f.FileType())
	if div.SMPTE {
		fmt.Printf("Division: SMPTE %d fps, %d subframes/frame\n", div.FramesPerSecond, div.SubframesPerFrame)
	} else {
		fmt.Printf("Division: %d ticks/quarter note\n", div.TicksPerQuarterNote)
	}
	fmt.Printf("Tracks: %d\n", len(f.Tracks()))
}

// runInspect prints the header and a one-line-per-track event count, without
// walking every event (see runDump for that).
func runInspect(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	f, err := smf.Parse(data)
	if err != nil {
		return err
	}

	printHeaderSummary(f)
	for i, track := range f.Tracks() {
		fmt.Printf("  track %d: %d events\n", i, len(track.Events()))
	}
	return nil
}

// runDump prints the header followed by every event in every track.
func runDump(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	f, err := smf.Parse(data)
	if err != nil {
		return err
	}

	printHeaderSummary(f)
	for i, track := range f.Tracks() {
		fmt.Printf("\nTrack %d: %d events\n", i, len(track.Events()))
		for j, ev := range track.Events() {
			switch e := ev.(type) {
			case *smf.MetaEvent:
				fmt.Printf("  [%d] delay=%d meta type=0x%02X len=%d\n", j, e.Delay, e.Type, len(e.Data))
			case *smf.SysexEvent:
				fmt.Printf("  [%d] delay=%d sysex len=%d\n", j, e.Delay, len(e.Data))
			case *smf.ChannelEvent:
				fmt.Printf("  [%d] delay=%d channel type=0x%X ch=%d p1=%d p2=%d\n", j, e.Delay, e.Type, e.Channel, e.Param1, e.Param2)
			}
		}
	}
	return nil
}

// runAddTrack inserts an empty (End-of-Track-only) track at index and writes
// the result. Use the library's AddTrack directly for anything more than
// this smoke-test-grade mutation.
func runAddTrack(cmd *cobra.Command, args []string) error {
	input := args[0]
	index, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid track index %q: %w", args[1], err)
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return err
	}
	f, err := smf.Parse(data)
	if err != nil {
		return err
	}
	if _, err := f.AddTrack(index, nil); err != nil {
		return err
	}

	out, err := f.Encode()
	if err != nil {
		return err
	}
	output := mutationOutputPath(input)
	if err := os.WriteFile(output, out, 0644); err != nil {
		return err
	}
	fmt.Printf("Added track at index %d -> %s\n", index, output)
	return nil
}

// runRmTrack removes the track at index and writes the result.
func runRmTrack(cmd *cobra.Command, args []string) error {
	input := args[0]
	index, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid track index %q: %w", args[1], err)
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return err
	}
	f, err := smf.Parse(data)
	if err != nil {
		return err
	}
	if err := f.RemoveTrack(index); err != nil {
		return err
	}

	out, err := f.Encode()
	if err != nil {
		return err
	}
	output := mutationOutputPath(input)
	if err := os.WriteFile(output, out, 0644); err != nil {
		return err
	}
	fmt.Printf("Removed track %d -> %s\n", index, output)
	return nil
}

func mutationOutputPath(input string) string {
	if outputFile != "" {
		return outputFile
	}
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return base + ".out.mid"
}

