package chat

import (
	"fmt"
	"strings"

	"github.com/nonthaphat/sportsdesk/internal/catalog"
)

// noGroundingMarker is rendered instead of an empty grounding block so the
// model sees an explicit "nothing found" signal rather than silence.
const noGroundingMarker = "ไม่พบข้อมูลที่เกี่ยวข้องในฐานข้อมูล"

// apologyPrefix opens the fail-closed reply when generation itself fails.
const apologyPrefix = "ขออภัยค่ะ ระบบขัดข้อง"

// buildAnalysisPrompt asks for the combined rewrite + detection in one call.
// The response must be a single JSON object; fencing is tolerated and
// stripped by the parser.
func buildAnalysisPrompt(sport catalog.Sport, intent, lastUserMessage, query string) string {
	sportLock := "None"
	if sport != "" {
		sportLock = string(sport)
	}
	intentLock := "None"
	if intent != "" {
		intentLock = intent
	}
	if lastUserMessage == "" {
		lastUserMessage = "None"
	}

	var b strings.Builder
	b.WriteString("คุณคือระบบวิเคราะห์และเขียนคำถามใหม่ (Rewriter & Analyzer)\n\n")
	b.WriteString("บริบทปัจจุบัน:\n")
	fmt.Fprintf(&b, "- Sport Lock: %s\n", sportLock)
	fmt.Fprintf(&b, "- Topic Lock: %s\n", intentLock)
	fmt.Fprintf(&b, "- Last Message: %s\n\n", lastUserMessage)
	fmt.Fprintf(&b, "คำถามปัจจุบัน: %q\n\n", query)
	b.WriteString(`งานของคุณ:
1. rewritten_query: เขียนคำถามใหม่ให้เป็น Standalone Query ที่สมบูรณ์ (เช่น 'ขอโปรโมชั่นของ NBA' แทนที่จะเป็น 'ของ NBA')
2. sport: ระบุกีฬา (EPL, NBA, NFL, TENNIS, GOLF, MULTI, หรือ None)
3. intent: ระบุหัวข้อ/Topic สั้นๆ (เช่น 'pricing', 'support', 'promo') **ห้ามยึดติดหัวข้อเดิมหากเปลี่ยนเรื่อง**
4. is_followup: true/false เมื่อเป็นคำถามต่อเนื่องสั้นๆ

ตอบเป็น JSON เท่านั้น:
{
  "rewritten_query": "...",
  "sport": "...",
  "intent": "...",
  "is_followup": true|false
}`)
	return b.String()
}

// buildGroundingBlock renders retrieved items in rank order, each with an
// index, kind label and sport tags. Empty retrieval renders the fixed
// no-grounding marker.
func buildGroundingBlock(items []RetrievedItem) string {
	if len(items) == 0 {
		return noGroundingMarker
	}

	var b strings.Builder
	for i, item := range items {
		label := "CHUNK"
		if item.Kind == KindParent {
			label = "FULL PARENT"
		}
		fmt.Fprintf(&b, "\n[Doc %d] %s (Sport: %s)\n%s\n", i+1, label, catalog.JoinTags(item.Sports), item.Content)
	}
	return b.String()
}

// buildSystemPrompt composes the per-turn system instruction: assistant
// persona, current lock state, the grounding block and the domain rules the
// answer must follow.
func buildSystemPrompt(sport catalog.Sport, intent, grounding string) string {
	sportInfo := "Active Sport: None (General)"
	if sport != "" {
		sportInfo = "Active Sport: " + string(sport)
	}
	topicInfo := "None"
	if intent != "" {
		topicInfo = intent
	}

	var b strings.Builder
	b.WriteString("คุณคือ 'น้องกีฬา' ผู้ช่วยแนะนำแพ็กเกจกีฬาที่เป็นมิตร\n")
	fmt.Fprintf(&b, "สถานะปัจจุบัน: %s\n", sportInfo)
	fmt.Fprintf(&b, "หัวข้อที่คุยอยู่: %s\n\n", topicInfo)
	b.WriteString("CONTEXT:\n")
	b.WriteString(grounding)
	b.WriteString("\n\nคำแนะนำ:\n")
	b.WriteString("1. ตอบโดยใช้ข้อมูลใน CONTEXT เท่านั้น\n")
	b.WriteString("2. ถ้าผู้ใช้ถามเรื่องราคา/แพ็กเกจ และเรามี Active Sport ให้เน้นแพ็กเกจของกีฬานั้น\n")
	b.WriteString("3. สำหรับ PLAY ULTIMATE: ต้องบอกเสมอว่ามีครบทั้ง 5 กีฬา + Streaming Services (Netflix, Disney+, etc.)\n")
	b.WriteString("4. ตอบสั้นกระชับ เป็นธรรมชาติ (ภาษาไทย)\n")
	return b.String()
}

// buildSummaryPrompt asks for an updated running summary of the older turns.
func buildSummaryPrompt(existingSummary, transcript string) string {
	var b strings.Builder
	b.WriteString("สรุปบทสนทนาต่อไปนี้ให้สั้นและครบประเด็น (ภาษาไทย) เพื่อใช้เป็นบริบทของการสนทนาต่อไป\n\n")
	if existingSummary != "" {
		b.WriteString("สรุปเดิม:\n")
		b.WriteString(existingSummary)
		b.WriteString("\n\n")
	}
	b.WriteString("บทสนทนาใหม่:\n")
	b.WriteString(transcript)
	b.WriteString("\nตอบเป็นข้อความสรุปเท่านั้น")
	return b.String()
}
