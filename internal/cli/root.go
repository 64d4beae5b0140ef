package cli

import "fmt"

func Run(args []string) error {
	if len(args) == 0 {
		printRootUsage()
		return nil
	}

	var err error
	switch args[0] {
	case "upload":
		err = runUpload(args[1:])
	case "youtube":
		err = runYouTube(args[1:])
	case "status":
		err = runStatus(args[1:])
	case "watch":
		err = runWatch(args[1:])
	case "list":
		err = runList(args[1:])
	case "detail":
		err = runDetail(args[1:])
	case "crawl":
		err = runCrawl(args[1:])
	case "dialogue":
		err = runDialogue(args[1:])
	case "image":
		err = runImage(args[1:])
	case "attach":
		err = runAttach(args[1:])
	case "new":
		err = runNew(args[1:])
	case "help", "-h", "--help":
		printRootUsage()
		return nil
	default:
		printRootUsage()
		return fmt.Errorf("unknown command %q", args[0])
	}

	return err
}

func printRootUsage() {
	fmt.Println("any2text: terminal client for the any2text transcription backend")
	fmt.Println()
	fmt.Println("Quick Start:")
	fmt.Println("  any2text upload recording.mp3")
	fmt.Println("  any2text youtube https://www.youtube.com/watch?v=...")
	fmt.Println("  any2text crawl https://www.youtube.com/@channel --max-videos 10")
	fmt.Println()
	fmt.Println("Submit Commands:")
	fmt.Println("  upload    upload an audio file and transcribe it")
	fmt.Println("  youtube   transcribe a single YouTube video")
	fmt.Println("  crawl     transcribe videos from a whole channel")
	fmt.Println("  new       interactive submission wizard")
	fmt.Println()
	fmt.Println("Job Commands:")
	fmt.Println("  status    one-shot status snapshot for a job")
	fmt.Println("  watch     follow a job until it finishes")
	fmt.Println("  list      list jobs with status filter and paging")
	fmt.Println("  detail    extended result view (formatted text, metrics, images)")
	fmt.Println()
	fmt.Println("Post-Processing Commands:")
	fmt.Println("  dialogue  reformat a finished transcript as dialogue")
	fmt.Println("  image     generate an illustrative image for a transcript")
	fmt.Println("  attach    upload and attach an image to a finished job")
	fmt.Println()
	fmt.Println("Notes:")
	fmt.Println("  - Use --json on commands for machine-readable output")
	fmt.Println("  - Backend address: --api flag or ANY2TEXT_API (default http://localhost:8000)")
}
