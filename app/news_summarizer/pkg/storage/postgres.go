package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	_ "github.com/lib/pq"

	"github.com/Varuni13/news_summarizer/app/news_summarizer/pkg/config"
	"github.com/Varuni13/news_summarizer/app/news_summarizer/pkg/model"
)

// ErrNotFound 报告不存在
var ErrNotFound = errors.New("report not found")

// Storage 报告持久化，基于 PostgreSQL
type Storage struct {
	db *sql.DB
}

// NewStorage 打开连接并初始化表结构
func NewStorage(cfg config.DBConfig) (*Storage, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := New(db)
	if err := s.InitSchema(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

// New 使用已有连接创建 Storage，不做表结构初始化
func New(db *sql.DB) *Storage {
	return &Storage{db: db}
}

func (s *Storage) Close() error {
	return s.db.Close()
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS report_runs (
		id SERIAL PRIMARY KEY,
		company TEXT NOT NULL,
		verdict TEXT NOT NULL,
		verdict_sentence TEXT,
		positive INTEGER NOT NULL DEFAULT 0,
		negative INTEGER NOT NULL DEFAULT 0,
		neutral INTEGER NOT NULL DEFAULT 0,
		common_topics TEXT,
		unique_topics TEXT,
		report_text TEXT,
		audio TEXT,
		narration_failed BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS article_records (
		id SERIAL PRIMARY KEY,
		run_id INTEGER REFERENCES report_runs(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		title TEXT,
		summary TEXT,
		sentiment TEXT,
		score DOUBLE PRECISION,
		topics TEXT,
		url TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS coverage_differences (
		id SERIAL PRIMARY KEY,
		run_id INTEGER REFERENCES report_runs(id) ON DELETE CASCADE,
		article_index INTEGER NOT NULL,
		prev_index INTEGER NOT NULL,
		topics TEXT,
		comparison TEXT,
		impact_category TEXT,
		impact TEXT
	)`,
}

// InitSchema 建表，可重复执行
func (s *Storage) InitSchema(ctx context.Context) error {
	for _, query := range schema {
		if _, err := s.db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query %s: %w", query, err)
		}
	}
	return nil
}

// SaveReport 在一个事务中保存报告、文章记录和覆盖差异，返回报告 ID
func (s *Storage) SaveReport(ctx context.Context, r *model.Report, n model.Narration) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var runID int
	err = tx.QueryRowContext(ctx, `
		INSERT INTO report_runs (company, verdict, verdict_sentence, positive, negative, neutral,
			common_topics, unique_topics, report_text, audio, narration_failed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`,
		r.Company, string(r.Verdict), r.VerdictSentence,
		r.Distribution.Positive, r.Distribution.Negative, r.Distribution.Neutral,
		encodeList(r.Overlap.Common), encodeList(r.Overlap.Unique),
		sanitize(r.Text), n.Handle, n.Failed).Scan(&runID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert report run: %w", err)
	}

	for i, rec := range r.Records {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO article_records (run_id, position, title, summary, sentiment, score, topics, url)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			runID, i, sanitize(rec.Title), sanitize(rec.Summary), string(rec.Sentiment), rec.Score,
			encodeList(rec.Topics), rec.URL)
		if err != nil {
			return 0, fmt.Errorf("failed to insert article record: %w", err)
		}
	}

	for _, d := range r.Differences {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO coverage_differences (run_id, article_index, prev_index, topics, comparison, impact_category, impact)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			runID, d.Index, d.PrevIndex, encodeList(d.Topics), d.Comparison, string(d.Category), d.Impact)
		if err != nil {
			return 0, fmt.Errorf("failed to insert coverage difference: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return runID, nil
}

// ReportSummary 报告列表项
type ReportSummary struct {
	ID           int
	Company      string
	Verdict      model.Sentiment
	ArticleCount int
	CreatedAt    time.Time
}

// StoredReport 已保存的完整报告
type StoredReport struct {
	ID        int
	CreatedAt time.Time
	Report    *model.Report
	Narration model.Narration
}

// ListReports 按创建时间倒序分页，page 从 1 开始
func (s *Storage) ListReports(ctx context.Context, page, pageSize int) ([]*ReportSummary, int, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * pageSize

	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.company, r.verdict, r.created_at, COUNT(a.id)
		FROM report_runs r
		LEFT JOIN article_records a ON a.run_id = r.id
		GROUP BY r.id, r.company, r.verdict, r.created_at
		ORDER BY r.created_at DESC, r.id DESC
		LIMIT $1 OFFSET $2`, pageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	var summaries []*ReportSummary
	for rows.Next() {
		var rs ReportSummary
		var verdict string
		if err := rows.Scan(&rs.ID, &rs.Company, &verdict, &rs.CreatedAt, &rs.ArticleCount); err != nil {
			return nil, 0, err
		}
		rs.Verdict = model.Sentiment(verdict)
		summaries = append(summaries, &rs)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM report_runs`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count reports: %w", err)
	}
	return summaries, total, nil
}

// GetReport 读取完整报告，不存在时返回 ErrNotFound
func (s *Storage) GetReport(ctx context.Context, id int) (*StoredReport, error) {
	r := &model.Report{ID: id}
	out := &StoredReport{ID: id, Report: r}

	var verdict, common, unique string
	var sentence, text, audio sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT company, verdict, verdict_sentence, positive, negative, neutral,
			common_topics, unique_topics, report_text, audio, narration_failed, created_at
		FROM report_runs WHERE id = $1`, id).Scan(
		&r.Company, &verdict, &sentence,
		&r.Distribution.Positive, &r.Distribution.Negative, &r.Distribution.Neutral,
		&common, &unique, &text, &audio, &out.Narration.Failed, &out.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query report: %w", err)
	}
	r.Verdict = model.Sentiment(verdict)
	r.VerdictSentence = sentence.String
	r.Text = text.String
	r.Overlap = model.TopicOverlap{Common: decodeList(common), Unique: decodeList(unique)}
	out.Narration.Handle = audio.String

	rows, err := s.db.QueryContext(ctx, `
		SELECT title, summary, sentiment, score, topics, url
		FROM article_records WHERE run_id = $1 ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query article records: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var rec model.ArticleRecord
		var sentiment, topics string
		if err := rows.Scan(&rec.Title, &rec.Summary, &sentiment, &rec.Score, &topics, &rec.URL); err != nil {
			return nil, err
		}
		rec.Sentiment = model.Sentiment(sentiment)
		rec.Topics = decodeList(topics)
		r.Records = append(r.Records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	drows, err := s.db.QueryContext(ctx, `
		SELECT article_index, prev_index, topics, comparison, impact_category, impact
		FROM coverage_differences WHERE run_id = $1 ORDER BY article_index`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query coverage differences: %w", err)
	}
	defer drows.Close()
	for drows.Next() {
		var d model.CoverageDifference
		var topics, category string
		if err := drows.Scan(&d.Index, &d.PrevIndex, &topics, &d.Comparison, &category, &d.Impact); err != nil {
			return nil, err
		}
		d.Topics = decodeList(topics)
		d.Category = model.ImpactCategory(category)
		r.Differences = append(r.Differences, d)
	}
	return out, drows.Err()
}

// encodeList 话题列表以 JSON 数组保存，保留顺序
func encodeList(items []string) string {
	if items == nil {
		items = []string{}
	}
	data, _ := json.Marshal(items)
	return string(data)
}

func decodeList(s string) []string {
	items := []string{}
	if s == "" {
		return items
	}
	_ = json.Unmarshal([]byte(s), &items)
	return items
}

// sanitize 移除无效 UTF-8 与 NULL 字节，PostgreSQL 文本字段不接受它们
func sanitize(s string) string {
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "")
	}
	return strings.ReplaceAll(s, "\x00", "")
}
