package stats

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// ToolStats represents statistics for a single tool
type ToolStats struct {
	Name                 string        `json:"name"`
	CallCount            int           `json:"call_count"`
	ErrorCount           int           `json:"error_count"`
	TotalExecutionTime   time.Duration `json:"total_execution_time"`
	AverageExecutionTime time.Duration `json:"average_execution_time"`
	ValuesAnalyzed       int           `json:"values_analyzed"`
	ValuesFlagged        int           `json:"values_flagged"`
	LastUsed             time.Time     `json:"last_used"`
}

// SessionStats represents statistics since the server started
type SessionStats struct {
	StartTime time.Time             `json:"start_time"`
	Tools     map[string]*ToolStats `json:"tools"`
}

// PersistentStats represents statistics persisted across server runs
type PersistentStats struct {
	FirstRecorded time.Time             `json:"first_recorded"`
	LastUpdated   time.Time             `json:"last_updated"`
	Tools         map[string]*ToolStats `json:"tools"`
}

// StatsManager manages tool usage statistics
type StatsManager struct {
	sessionStats    *SessionStats
	persistentStats *PersistentStats
	statsFilePath   string
	mutex           sync.RWMutex
}

// NewStatsManager creates a new StatsManager. Statistics already stored at
// statsFilePath are loaded.
func NewStatsManager(statsFilePath string) (*StatsManager, error) {
	manager := &StatsManager{
		sessionStats: &SessionStats{
			StartTime: time.Now(),
			Tools:     make(map[string]*ToolStats),
		},
		persistentStats: &PersistentStats{
			FirstRecorded: time.Now(),
			LastUpdated:   time.Now(),
			Tools:         make(map[string]*ToolStats),
		},
		statsFilePath: statsFilePath,
	}

	// Create the directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(statsFilePath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory for stats file: %w", err)
	}

	data, err := os.ReadFile(statsFilePath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return manager, nil
	case err != nil:
		return nil, fmt.Errorf("failed to read stats file: %w", err)
	}

	if err := json.Unmarshal(data, &manager.persistentStats); err != nil {
		return nil, fmt.Errorf("failed to parse stats file: %w", err)
	}
	if manager.persistentStats.Tools == nil {
		manager.persistentStats.Tools = make(map[string]*ToolStats)
	}

	return manager, nil
}

// RecordToolUsage records one call of a tool
func (m *StatsManager) RecordToolUsage(toolName string, executionTime time.Duration, failed bool) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	now := time.Now()
	for _, tools := range []map[string]*ToolStats{m.sessionStats.Tools, m.persistentStats.Tools} {
		tool := toolEntry(tools, toolName)
		tool.CallCount++
		if failed {
			tool.ErrorCount++
		}
		tool.TotalExecutionTime += executionTime
		tool.AverageExecutionTime = tool.TotalExecutionTime / time.Duration(tool.CallCount)
		tool.LastUsed = now
	}
	m.persistentStats.LastUpdated = now

	return m.savePersistentStats()
}

// RecordAnalysis adds the number of values a tool checked and flagged
func (m *StatsManager) RecordAnalysis(toolName string, analyzed, flagged int) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for _, tools := range []map[string]*ToolStats{m.sessionStats.Tools, m.persistentStats.Tools} {
		tool := toolEntry(tools, toolName)
		tool.ValuesAnalyzed += analyzed
		tool.ValuesFlagged += flagged
	}
	m.persistentStats.LastUpdated = time.Now()

	return m.savePersistentStats()
}

func toolEntry(tools map[string]*ToolStats, toolName string) *ToolStats {
	tool, ok := tools[toolName]
	if !ok {
		tool = &ToolStats{Name: toolName}
		tools[toolName] = tool
	}
	return tool
}

// GetSessionStats returns statistics since the server started
func (m *StatsManager) GetSessionStats() *SessionStats {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return &SessionStats{
		StartTime: m.sessionStats.StartTime,
		Tools:     copyTools(m.sessionStats.Tools),
	}
}

// GetPersistentStats returns statistics persisted across server runs
func (m *StatsManager) GetPersistentStats() *PersistentStats {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return &PersistentStats{
		FirstRecorded: m.persistentStats.FirstRecorded,
		LastUpdated:   m.persistentStats.LastUpdated,
		Tools:         copyTools(m.persistentStats.Tools),
	}
}

// ResetSessionStats resets the statistics of the current run
func (m *StatsManager) ResetSessionStats() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.sessionStats = &SessionStats{
		StartTime: time.Now(),
		Tools:     make(map[string]*ToolStats),
	}
}

func copyTools(tools map[string]*ToolStats) map[string]*ToolStats {
	result := make(map[string]*ToolStats, len(tools))
	for name, tool := range tools {
		toolCopy := *tool
		result[name] = &toolCopy
	}
	return result
}

// savePersistentStats saves persistent stats to file
func (m *StatsManager) savePersistentStats() error {
	data, err := json.MarshalIndent(m.persistentStats, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}

	if err := os.WriteFile(m.statsFilePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write stats file: %w", err)
	}

	return nil
}

// FormatStats formats statistics as a string
func FormatStats(sessionStats *SessionStats, persistentStats *PersistentStats) string {
	var result strings.Builder
	result.WriteString("Tool Usage Statistics\n\n")

	// Session stats
	result.WriteString("Current Session Statistics:\n")
	result.WriteString(fmt.Sprintf("Session started: %s\n", sessionStats.StartTime.Format(time.RFC3339)))
	result.WriteString(fmt.Sprintf("Session duration: %s\n\n", time.Since(sessionStats.StartTime).Round(time.Second)))

	if len(sessionStats.Tools) > 0 {
		writeToolTable(&result, sessionStats.Tools)
	} else {
		result.WriteString("No tools used in this session.\n")
	}

	// Persistent stats
	result.WriteString("\nAll-Time Statistics:\n")
	result.WriteString(fmt.Sprintf("First recorded: %s\n", persistentStats.FirstRecorded.Format(time.RFC3339)))
	result.WriteString(fmt.Sprintf("Last updated: %s\n\n", persistentStats.LastUpdated.Format(time.RFC3339)))

	if len(persistentStats.Tools) > 0 {
		writeToolTable(&result, persistentStats.Tools)
	} else {
		result.WriteString("No tools used across all sessions.\n")
	}

	return result.String()
}

func writeToolTable(b *strings.Builder, tools map[string]*ToolStats) {
	names := make([]string, 0, len(tools))
	for name := range tools {
		names = append(names, name)
	}
	sort.Strings(names)

	b.WriteString("Tool                  | Calls | Errors | Avg Time  | Total Time | Analyzed | Flagged\n")
	b.WriteString("----------------------|-------|--------|-----------|------------|----------|--------\n")

	for _, name := range names {
		tool := tools[name]
		b.WriteString(fmt.Sprintf("%-22s| %5d | %6d | %9s | %10s | %8d | %7d\n",
			tool.Name,
			tool.CallCount,
			tool.ErrorCount,
			tool.AverageExecutionTime.Round(time.Millisecond).String(),
			tool.TotalExecutionTime.Round(time.Millisecond).String(),
			tool.ValuesAnalyzed,
			tool.ValuesFlagged))
	}
}
