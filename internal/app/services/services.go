package services

// Services defined in this package:
// - AuthService: registration, login, token refresh and password recovery
// - UserService: admin-facing user management
// - ResourceService: study material CRUD with cached listings
// - EngagementService: per-user like/bookmark/view/download state
// - AnnouncementService: branch-targeted notices
// - ChatService: shared room history and message creation
// - AssistantService: proxied AI question answering
