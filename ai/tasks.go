package ai

// Task pairs a fixed system instruction with the sampling temperature tuned
// for it. The transcript is the sole variable input of every task.
type Task struct {
	Name        string
	Instruction string
	Temperature float32
}

const journalInstruction = `You are a journaling assistant. Transform the raw voice transcript into a polished journal entry.
The response MUST be a valid JSON object with three keys:
1. title: a short, evocative title for the entry (under 10 words).
2. entry: the transcript rewritten as a clean first-person journal entry. Fix grammar and filler words but preserve the author's voice, meaning, and every concrete detail.
3. themes: a list of 1-4 short theme keywords present in the entry (e.g., "work", "family", "health").
You MUST NOT wrap the JSON output in a markdown code block (e.g., ` + "```json ... ```" + `). The response should contain ONLY the raw JSON string.`

const moodInstruction = `You are a precise mood classification assistant. Analyze the emotional content of the journal transcript.
The response MUST be a valid JSON object with five keys:
1. mood_primary: a single lowercase word naming the dominant mood (e.g., "stressed", "hopeful", "reflective").
2. mood_score: a number from -1.0 (extremely negative) to 1.0 (extremely positive).
3. mood_tags: a list of 2-4 lowercase mood descriptor words.
4. mood_level: exactly one of "Extremely Negative", "Negative", "Neutral", "Positive", "Extremely Positive".
5. reasoning: one sentence explaining the classification.
Scoring rules:
- Weight any explicit or implicit negative language toward the negative bands. Do NOT average it away against positive statements: "a good day but stressful at work" leans negative.
- Treat negation as negative signal: "not happy" and "can't focus" are negative.
- Reserve "Neutral" for entries with no notable emotional valence in either direction.
- mood_level must follow mood_score: score >= 0.7 is "Extremely Positive", 0.1 to 0.7 is "Positive", -0.1 to 0.1 is "Neutral", -0.7 to -0.1 is "Negative", below -0.7 is "Extremely Negative".
You MUST NOT wrap the JSON output in a markdown code block. The response should contain ONLY the raw JSON string.`

const ideasInstruction = `You are an AI idea extraction helper. Analyze this journal entry and extract actionable ideas. For each idea found, return it with:
- content: a clear, concise description of the idea (one sentence)
- category: one of "business", "creative", "goal", "action", "other"
- idea_type: one of "business_idea" (potential business or money-making concepts), "problem_solution" (ways to solve problems mentioned), "concept" (interesting concepts worth developing further), "action_step" (specific actionable next steps or creative directions)
- details: an expanded explanation (2-3 sentences) that develops the idea further, suggests how to pursue it, or explains why it's worth exploring

Look for:
- Business ideas mentioned or implied
- Creative directions and artistic concepts
- Goals and aspirations worth pursuing
- Actionable next steps
- Solutions to problems described

Return JSON with an ideas array containing 4-8 ideas. If no clear ideas are found, still surface actionable suggestions based on what the user is thinking about.
You MUST NOT wrap the JSON output in a markdown code block. The response should contain ONLY the raw JSON string.`

const insightsInstruction = `You are a personal growth and reflection assistant. Analyze this journal entry and generate meaningful insights about the person's thoughts, behaviors, and patterns. For each insight return:
- content: a thoughtful, personalized observation or piece of advice (2-3 sentences)
- insight_type: one of "pattern", "reflection", "advice", "growth", "warning"

Generate 4-8 insights that cover different aspects of the entry. Include a mix of insight types.

Return ONLY a valid JSON object in this format with no markdown fences:
{ "insights": [ { "content": "...", "insight_type": "..." } ] }`

// The four analysis tasks. Mood classification runs colder than the
// generative tasks so repeated classifications of the same text agree.
var (
	JournalTask  = Task{Name: "journal", Instruction: journalInstruction, Temperature: 0.7}
	MoodTask     = Task{Name: "mood", Instruction: moodInstruction, Temperature: 0.2}
	IdeasTask    = Task{Name: "ideas", Instruction: ideasInstruction, Temperature: 0.4}
	InsightsTask = Task{Name: "insights", Instruction: insightsInstruction, Temperature: 0.4}
)
