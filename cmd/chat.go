package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/nonthaphat/sportsdesk/internal/catalog"
	"github.com/nonthaphat/sportsdesk/internal/chat"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the package assistant in the terminal",
	Long: `Starts an interactive terminal conversation with the assistant.
Commands inside the session:
  /sport   pick a sport to lock the conversation to
  /reset   clear history and locked context
  /state   show the current sport and topic
  /quit    exit`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	provider, err := createLLMProviderFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("creating LLM provider: %w", err)
	}

	store, database, err := openStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	engine := chat.NewEngine(engineOptions(cfg, provider, store, loadParents(ctx, database)))

	fmt.Println("น้องกีฬาพร้อมตอบคำถามแพ็กเกจกีฬาแล้วค่ะ (/sport /reset /state /quit)")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("คุณ> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch line {
		case "/quit", "/exit":
			return nil
		case "/reset":
			engine.Reset()
			fmt.Println("เริ่มบทสนทนาใหม่ค่ะ")
			continue
		case "/state":
			printState(engine)
			continue
		case "/sport":
			if err := pickSport(engine); err != nil {
				fmt.Fprintf(os.Stderr, "sport selection: %v\n", err)
			}
			continue
		}

		reply := engine.Chat(ctx, line)
		fmt.Printf("\nน้องกีฬา> %s\n\n", reply)
	}
}

// pickSport shows an interactive sport menu and applies the choice as a
// manual override.
func pickSport(engine *chat.Engine) error {
	const allSports = "ทุกกีฬา (clear lock)"

	items := []string{allSports}
	order := []catalog.Sport{
		catalog.SportEPL,
		catalog.SportNBA,
		catalog.SportNFL,
		catalog.SportTennis,
		catalog.SportGolf,
	}
	for _, s := range order {
		items = append(items, catalog.DisplayNames[s])
	}

	prompt := promptui.Select{
		Label: "เลือกกีฬา",
		Items: items,
	}
	idx, _, err := prompt.Run()
	if err != nil {
		return err
	}

	if idx == 0 {
		engine.SetSport("")
		fmt.Println("ล้างการล็อกกีฬาแล้ว ตอบได้ทุกกีฬาค่ะ")
		return nil
	}

	sport := order[idx-1]
	engine.SetSport(sport)
	fmt.Printf("ล็อกกีฬาเป็น %s แล้วค่ะ\n", catalog.DisplayNames[sport])
	return nil
}

func printState(engine *chat.Engine) {
	sport := "ไม่ได้ล็อก"
	if s := engine.Sport(); s != "" {
		sport = string(s)
	}
	intent := "ไม่มี"
	if i := engine.Intent(); i != "" {
		intent = i
	}
	fmt.Printf("กีฬา: %s | หัวข้อ: %s | ประวัติ %d ข้อความ\n", sport, intent, len(engine.History()))
}
