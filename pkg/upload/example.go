package upload

// ExampleTranscript is a six-message demo conversation. It exercises
// every memory type the service extracts and gives new operators
// something to submit before they have real data.
const ExampleTranscript = `[
  {
    "message_id": "msg_001",
    "timestamp": "2024-01-15T10:30:00Z",
    "sender": "user",
    "content": "Hi! I'd like to order some food for delivery to my apartment",
    "chat_id": "chat_demo_001"
  },
  {
    "message_id": "msg_002",
    "timestamp": "2024-01-15T10:30:15Z",
    "sender": "assistant",
    "content": "Hello! I'd be happy to help you order food. What would you like to eat today?",
    "chat_id": "chat_demo_001"
  },
  {
    "message_id": "msg_003",
    "timestamp": "2024-01-15T10:30:45Z",
    "sender": "user",
    "content": "I'm vegetarian and I love Italian food. Can you recommend something? Also, my address is 456 Oak Street, Apt 3B, New York, NY 10001",
    "chat_id": "chat_demo_001"
  },
  {
    "message_id": "msg_004",
    "timestamp": "2024-01-15T10:31:00Z",
    "sender": "assistant",
    "content": "Perfect! I've noted that you're vegetarian and love Italian food. I've also saved your address. I'd recommend the Margherita pizza or pasta primavera from Tony's Italian Kitchen. They have excellent vegetarian options!",
    "chat_id": "chat_demo_001"
  },
  {
    "message_id": "msg_005",
    "timestamp": "2024-01-15T10:31:30Z",
    "sender": "user",
    "content": "The pasta primavera sounds great! I usually eat dinner around 7 PM, so please schedule it for delivery at 6:45 PM. Also, please leave it with the doorman in the lobby - his name is James.",
    "chat_id": "chat_demo_001"
  },
  {
    "message_id": "msg_006",
    "timestamp": "2024-01-15T10:32:00Z",
    "sender": "assistant",
    "content": "Excellent choice! I've ordered pasta primavera for delivery at 6:45 PM to 456 Oak Street, Apt 3B. I've noted to leave it with James, the doorman. Your order will be ready right before your usual 7 PM dinner time!",
    "chat_id": "chat_demo_001"
  }
]`

// FormatRequirements is the transcript format guide, rendered as
// markdown when validation fails or on request.
const FormatRequirements = `# Transcript format

Uploads must be a JSON **array** of message objects.

Each message needs all five fields:

| Field | Value |
|---|---|
| ` + "`message_id`" + ` | unique id within the transcript |
| ` + "`timestamp`" + ` | ISO 8601, e.g. ` + "`2024-01-15T10:30:00Z`" + ` |
| ` + "`sender`" + ` | ` + "`user`" + ` or ` + "`assistant`" + ` |
| ` + "`content`" + ` | the message text |
| ` + "`chat_id`" + ` | conversation id; one conversation per id |

Messages belonging to the same conversation share a ` + "`chat_id`" + `.
Run ` + "`memcon upload --example`" + ` to print a complete sample transcript.
`
